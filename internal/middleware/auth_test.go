package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/internal/auth"
	"github.com/recipebox-dev/recipebox/internal/models"
	"github.com/recipebox-dev/recipebox/internal/store"
	"github.com/recipebox-dev/recipebox/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	user models.User
	err  error
}

func (f *fakeUserStore) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	return models.User{}, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return models.User{}, store.ErrNotFound
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uint) (models.User, error) {
	return f.user, f.err
}

func (f *fakeUserStore) Update(ctx context.Context, id uint, changes store.UserChanges) (models.User, error) {
	return f.user, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id uint) error {
	return nil
}

func newAuthTestEngine(users store.UserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthMiddleware(users), func(ctx *gin.Context) {
		user, _ := ctx.Get(types.ContextUserKey)
		ctx.JSON(http.StatusOK, user)
	})

	return r
}

func TestAuthMiddleware(t *testing.T) {
	auth.SetJWTSecret("test-secret")

	activeUser := models.User{ID: 5, Name: "Ada", Email: "ada@example.com", IsActive: true}

	validToken, err := auth.GenerateToken(activeUser.ID, activeUser.Email)
	require.NoError(t, err)

	tests := []struct {
		name         string
		header       string
		users        *fakeUserStore
		expectedCode int
	}{
		{
			name:         "missing header",
			header:       "",
			users:        &fakeUserStore{user: activeUser},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "malformed header",
			header:       "Token " + validToken,
			users:        &fakeUserStore{user: activeUser},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid token",
			header:       "Bearer garbage",
			users:        &fakeUserStore{user: activeUser},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "unknown user",
			header:       "Bearer " + validToken,
			users:        &fakeUserStore{err: store.ErrNotFound},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "inactive user",
			header:       "Bearer " + validToken,
			users:        &fakeUserStore{user: models.User{ID: 5, IsActive: false}},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "valid token and active user",
			header:       "Bearer " + validToken,
			users:        &fakeUserStore{user: activeUser},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthTestEngine(tt.users)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestAuthMiddlewareInjectsUser(t *testing.T) {
	auth.SetJWTSecret("test-secret")

	user := models.User{ID: 9, Name: "Grace", Email: "grace@example.com", IsActive: true}

	token, err := auth.GenerateToken(user.ID, user.Email)
	require.NoError(t, err)

	var seen AuthenticatedUser

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthMiddleware(&fakeUserStore{user: user}), func(ctx *gin.Context) {
		value, _ := ctx.Get(types.ContextUserKey)
		seen = value.(AuthenticatedUser)
		ctx.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, AuthenticatedUser{ID: 9, Name: "Grace", Email: "grace@example.com"}, seen)
}
