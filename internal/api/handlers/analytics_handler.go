// internal/api/handlers/analytics_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"e-waste-api-server/internal/store"
)

type Summarizer interface {
	Summary(ctx context.Context) (*store.Summary, error)
}

type AnalyticsHandler struct {
	Stats Summarizer
}

// GetSummary returns platform-wide totals for the admin dashboard.
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.Stats.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
