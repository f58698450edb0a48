package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newJwtTestApp(t *testing.T) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)

	app := fiber.New()
	app.Get("/protected", JwtMiddleware, func(ctx *fiber.Ctx) error {
		// The controllers' assertion must be safe once the middleware
		// let the request through.
		userId := ctx.Locals("user_id").(string)
		return ctx.SendString(userId)
	})
	return app
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func requestWithToken(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req)
	require.NoError(t, err)
	return res
}

func TestJwtMiddlewareAcceptsValidToken(t *testing.T) {
	app := newJwtTestApp(t)
	token := signToken(t, jwt.MapClaims{"user_id": "b7e0a1de-5b2c-4a53-9c40-1de2f7a45a11"})

	res := requestWithToken(t, app, token)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}

func TestJwtMiddlewareRejectsMissingToken(t *testing.T) {
	app := newJwtTestApp(t)

	res := requestWithToken(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestJwtMiddlewareRejectsMissingUserIdClaim(t *testing.T) {
	app := newJwtTestApp(t)
	token := signToken(t, jwt.MapClaims{"sub": "someone"})

	res := requestWithToken(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestJwtMiddlewareRejectsNonStringUserIdClaim(t *testing.T) {
	app := newJwtTestApp(t)
	token := signToken(t, jwt.MapClaims{"user_id": 12345})

	res := requestWithToken(t, app, token)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestJwtMiddlewareRejectsBadSignature(t *testing.T) {
	app := newJwtTestApp(t)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "abc"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	res := requestWithToken(t, app, signed)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}
