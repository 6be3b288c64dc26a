package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/amirhossein-jamali/personal-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/personal-ledger/internal/infrastructure/adapter/api/dto"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Code:    errs.CodeStorageUnavailable,
			Message: "storage unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
