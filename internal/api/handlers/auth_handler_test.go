package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"e-waste-api-server/internal/apperr"
	"e-waste-api-server/internal/auth"
	"e-waste-api-server/internal/models"
)

type fakeAccounts struct {
	byEmail map[string]*models.User
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: make(map[string]*models.User)}
}

func (f *fakeAccounts) Create(ctx context.Context, user *models.User) (*models.User, error) {
	email := strings.ToLower(user.Email)
	if _, exists := f.byEmail[email]; exists {
		return nil, apperr.ErrDuplicateEmail
	}
	created := *user
	created.ID = primitive.NewObjectID()
	created.Email = email
	if created.UserType == "" {
		created.UserType = models.UserTypeUser
	}
	created.Badges = []string{}
	f.byEmail[email] = &created
	return &created, nil
}

func (f *fakeAccounts) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

// cheapHash keeps the login tests fast; production hashing uses a much
// higher cost.
func cheapHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthRouter(accounts *fakeAccounts) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{Users: accounts, Auth: auth.NewManager("test-secret", "1h")}
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func TestRegister(t *testing.T) {
	t.Run("creates a user with zeroed stats", func(t *testing.T) {
		r := newAuthRouter(newFakeAccounts())

		w := postJSON(t, r, "/api/auth/register", gin.H{
			"name":     "Eco User",
			"email":    "eco@example.com",
			"password": "s3cret-pass",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var created models.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "eco@example.com", created.Email)
		assert.Equal(t, models.UserTypeUser, created.UserType)
		assert.Zero(t, created.Points)
		assert.Zero(t, created.TotalRecycled)
		assert.Equal(t, []string{}, created.Badges)
		assert.NotContains(t, w.Body.String(), "s3cret-pass")
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		accounts := newFakeAccounts()
		r := newAuthRouter(accounts)

		body := gin.H{"name": "Eco User", "email": "eco@example.com", "password": "s3cret-pass"}
		require.Equal(t, http.StatusCreated, postJSON(t, r, "/api/auth/register", body).Code)
		assert.Equal(t, http.StatusBadRequest, postJSON(t, r, "/api/auth/register", body).Code)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		r := newAuthRouter(newFakeAccounts())
		w := postJSON(t, r, "/api/auth/register", gin.H{
			"name":     "Eco User",
			"email":    "eco@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	seed := func(t *testing.T) *fakeAccounts {
		accounts := newFakeAccounts()
		accounts.byEmail["eco@example.com"] = &models.User{
			ID:       primitive.NewObjectID(),
			Name:     "Eco User",
			Email:    "eco@example.com",
			Password: cheapHash(t, "s3cret-pass"),
			UserType: models.UserTypeUser,
		}
		return accounts
	}

	t.Run("issues a token on valid credentials", func(t *testing.T) {
		r := newAuthRouter(seed(t))

		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "eco@example.com",
			"password": "s3cret-pass",
			"userType": "user",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			User  models.User `json:"user"`
			Token string      `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "eco@example.com", resp.User.Email)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		r := newAuthRouter(seed(t))
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "eco@example.com",
			"password": "wrong-pass",
			"userType": "user",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong user type", func(t *testing.T) {
		r := newAuthRouter(seed(t))
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "eco@example.com",
			"password": "s3cret-pass",
			"userType": "admin",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email looks the same as a bad password", func(t *testing.T) {
		r := newAuthRouter(seed(t))
		w := postJSON(t, r, "/api/auth/login", gin.H{
			"email":    "nobody@example.com",
			"password": "s3cret-pass",
			"userType": "user",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
