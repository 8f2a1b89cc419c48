// internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"e-waste-api-server/internal/apperr"
	"e-waste-api-server/internal/auth"
	"e-waste-api-server/internal/models"
)

// UserAccounts is the slice of the user store the auth endpoints need.
type UserAccounts interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	Users UserAccounts
	Auth  *auth.Manager
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	UserType string `json:"userType" binding:"omitempty,oneof=user admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=user admin"`
}

// Register creates a user with zeroed cumulative stats. The password is
// stored only as a bcrypt hash.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hashedPassword,
		UserType: req.UserType,
	}

	created, err := h.Users.Create(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Login verifies the claimed identity against the stored hash and issues
// a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			err = apperr.ErrUnauthenticated
		}
		respondError(c, err)
		return
	}

	// Same response for wrong type and wrong password.
	if user.UserType != req.UserType || !auth.CheckPasswordHash(req.Password, user.Password) {
		respondError(c, apperr.ErrUnauthenticated)
		return
	}

	token, err := h.Auth.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue session token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
