// internal/api/handlers/user_handler.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"e-waste-api-server/internal/models"
	"e-waste-api-server/internal/store"
)

type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id string, patch store.UserPatch) (*models.User, error)
}

type UserHandler struct {
	Users UserDirectory
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Phone *string `json:"phone"`
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser edits a profile. Users may only edit their own; admins may
// edit anyone's. Cumulative stats are untouchable here.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	targetID := c.Param("id")
	if c.GetString("user_type") != models.UserTypeAdmin && c.GetString("user_id") != targetID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.Users.UpdateProfile(c.Request.Context(), targetID, store.UserPatch{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListUsers backs the admin user-management table.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
