package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ProviderInfo describes the configured extraction provider.
type ProviderInfo interface {
	Provider() string
	Model() string
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	provider ProviderInfo
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(provider ProviderInfo) *HealthHandler {
	return &HealthHandler{provider: provider}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Reports the configured document analysis provider and model
// @Tags health
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	c.JSON(http.StatusOK, ReadinessResponse{
		Status:   "ok",
		Provider: h.provider.Provider(),
		Model:    h.provider.Model(),
	})
}
