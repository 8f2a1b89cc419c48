// internal/api/handlers/bin_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"e-waste-api-server/internal/models"
	"e-waste-api-server/internal/socket"
	"e-waste-api-server/internal/store"
)

// Bins is the bin directory surface the handlers need.
type Bins interface {
	List(ctx context.Context) ([]models.Bin, error)
	GetByBinID(ctx context.Context, binID string) (*models.Bin, error)
	Create(ctx context.Context, bin *models.Bin) (*models.Bin, error)
	Update(ctx context.Context, binID string, patch store.BinPatch) (*models.Bin, error)
	Delete(ctx context.Context, binID string) error
}

type BinHandler struct {
	Bins Bins
	Hub  *socket.Hub
}

type CreateBinRequest struct {
	BinID         string   `json:"binID"`
	Name          string   `json:"name" binding:"required"`
	Lat           float64  `json:"lat" binding:"min=-90,max=90"`
	Lng           float64  `json:"lng" binding:"min=-180,max=180"`
	Address       string   `json:"address" binding:"required"`
	AcceptedItems []string `json:"acceptedItems"`
	FillLevel     int      `json:"fillLevel" binding:"min=0,max=100"`
	Status        string   `json:"status" binding:"omitempty,oneof=operational full maintenance"`
}

type UpdateBinRequest struct {
	Name          *string  `json:"name"`
	Lat           *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng           *float64 `json:"lng" binding:"omitempty,min=-180,max=180"`
	Address       *string  `json:"address"`
	AcceptedItems []string `json:"acceptedItems"`
	FillLevel     *int     `json:"fillLevel" binding:"omitempty,min=0,max=100"`
	Status        *string  `json:"status" binding:"omitempty,oneof=operational full maintenance"`
}

func (h *BinHandler) GetAllBins(c *gin.Context) {
	bins, err := h.Bins.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bins)
}

func (h *BinHandler) GetBinByID(c *gin.Context) {
	bin, err := h.Bins.GetByBinID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bin)
}

func (h *BinHandler) CreateBin(c *gin.Context) {
	var req CreateBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bin := &models.Bin{
		BinID:         req.BinID,
		Name:          req.Name,
		Lat:           req.Lat,
		Lng:           req.Lng,
		Address:       req.Address,
		AcceptedItems: req.AcceptedItems,
		FillLevel:     req.FillLevel,
		Status:        req.Status,
	}

	created, err := h.Bins.Create(c.Request.Context(), bin)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notify("bin_created", created)
	c.JSON(http.StatusCreated, created)
}

func (h *BinHandler) UpdateBin(c *gin.Context) {
	var req UpdateBinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := store.BinPatch{
		Name:          req.Name,
		Lat:           req.Lat,
		Lng:           req.Lng,
		Address:       req.Address,
		AcceptedItems: req.AcceptedItems,
		FillLevel:     req.FillLevel,
		Status:        req.Status,
	}

	updated, err := h.Bins.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	h.notify("bin_updated", updated)
	c.JSON(http.StatusOK, updated)
}

func (h *BinHandler) DeleteBin(c *gin.Context) {
	binID := c.Param("id")
	if err := h.Bins.Delete(c.Request.Context(), binID); err != nil {
		respondError(c, err)
		return
	}

	h.notify("bin_deleted", gin.H{"binID": binID})
	c.JSON(http.StatusOK, gin.H{"message": "Bin deleted successfully"})
}

// notify pushes bin changes to connected monitoring dashboards.
func (h *BinHandler) notify(event string, payload interface{}) {
	if h.Hub != nil {
		h.Hub.BroadcastJSON(event, payload)
	}
}
