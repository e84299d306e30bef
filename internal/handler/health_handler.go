package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/academia-backend/internal/response"
)

// Pinger is implemented by repository.UnitOfWork.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the data store is reachable.
type HealthHandler struct {
	store Pinger
	log   zerolog.Logger
}

func NewHealthHandler(store Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{store: store, log: log.With().Str("component", "health").Logger()}
}

// Health godoc
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn().Err(err).Msg("store ping failed")
		response.Fail(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	response.Data(c, http.StatusOK, gin.H{"status": "ok"})
}
