package serverutils

// ApiResponse is the uniform envelope for every endpoint.
type ApiResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ApiResponse[any] {
	return ApiResponse[any]{
		Code:    code,
		Message: message,
	}
}
