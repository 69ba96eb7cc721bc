package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "manufacturing-backend/internal/pkg/errors"
	"manufacturing-backend/internal/record"
)

// GetDemo handles GET /api/demo: counts and the first records of every kind.
func (h *Handler) GetDemo(c *gin.Context) {
	summary, err := record.BuildSummary(c.Request.Context(), h.store, h.basePath, h.version, h.now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetDocs handles GET /docs.
func (h *Handler) GetDocs(c *gin.Context) {
	c.JSON(http.StatusOK, NewDocs(h.basePath))
}

// Healthz reports whether the database answers.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.KindStore, "Database unavailable", http.StatusServiceUnavailable))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
