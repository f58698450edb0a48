package dto

type MigrationResult struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors"`
}
