package handler

// Swagger type definitions for API documentation.

// ErrorResponseBody is the error envelope returned on every failure.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// ReadinessResponse is returned by the readiness probe.
type ReadinessResponse struct {
	Status   string `json:"status" example:"ok"`
	Provider string `json:"provider" example:"openai"`
	Model    string `json:"model" example:"gpt-4o"`
}
