package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"maternal-care-service/internal/adapters/primary/http/dto"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WithDatabase makes Health report the content database as well.
func (h *Handler) WithDatabase(db Pinger) *Handler {
	h.db = db
	return h
}

// Health reports model states, and 503 when the content database is unreachable
func (h *Handler) Health(c *gin.Context) {
	models := dto.ToModelHealth(h.registry.States())

	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			log.WithError(err).Warn("health check: database unreachable")
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "unhealthy", Error: err.Error(), Models: models})
			return
		}
	}

	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Models: models})
}
