// internal/api/handlers/recycle_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"e-waste-api-server/internal/ledger"
	"e-waste-api-server/internal/models"
)

// RewardsLedger is the core submit/read surface of the rewards ledger.
type RewardsLedger interface {
	SubmitRecycling(ctx context.Context, userID string, item *models.RecycledItem) (*models.Detection, *models.User, error)
	ListRecentDetections(ctx context.Context, userID string, limit int64) ([]models.Detection, error)
}

type RecycleHandler struct {
	Ledger RewardsLedger
}

type SubmitRecyclingRequest struct {
	UserID string               `json:"userId" binding:"required"`
	Item   *models.RecycledItem `json:"item" binding:"required"`
}

// SubmitRecycling records a confirmed recycling event and returns the
// updated user together with the stored detection.
func (h *RecycleHandler) SubmitRecycling(c *gin.Context) {
	var req SubmitRecyclingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detection, user, err := h.Ledger.SubmitRecycling(c.Request.Context(), req.UserID, req.Item)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Recycling recorded successfully",
		"updatedUser":    user,
		"savedDetection": detection,
	})
}

// GetRecentDetections returns the user's latest detections, newest first.
func (h *RecycleHandler) GetRecentDetections(c *gin.Context) {
	detections, err := h.Ledger.ListRecentDetections(c.Request.Context(), c.Param("userId"), ledger.DefaultRecentLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detections)
}
