package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movienight/server/internal/config"
	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/service"
)

type fakeAuthService struct {
	signupFn func(ctx context.Context, user domain.User) (domain.User, error)
	loginFn  func(ctx context.Context, username, password string) (domain.User, error)
}

func (f *fakeAuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	return f.signupFn(ctx, user)
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (domain.User, error) {
	return f.loginFn(ctx, username, password)
}

func newAuthTestRouter(svc AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(&config.APIConfig{JWTSigningKey: "test-key"}, svc)
	router := gin.New()
	router.POST("/auth/signup", handler.HandleSignup)
	router.POST("/auth/login", handler.HandleLogin)

	return router
}

func TestAuthHandler_HandleSignup(t *testing.T) {
	const validBody = `{
		"first_name": "Alice",
		"last_name": "Smith",
		"username": "alice",
		"password": "secretpw1",
		"confirm_password": "secretpw1",
		"age": 30
	}`

	t.Run("returns 201 and the created user", func(t *testing.T) {
		svc := &fakeAuthService{
			signupFn: func(_ context.Context, user domain.User) (domain.User, error) {
				user.ID = 1
				return user, nil
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(validBody))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"alice"`)
		assert.NotContains(t, w.Body.String(), "secretpw1")
	})

	t.Run("returns 400 on an invalid payload", func(t *testing.T) {
		router := newAuthTestRouter(&fakeAuthService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"alice"}`))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 400 on an underage user", func(t *testing.T) {
		svc := &fakeAuthService{
			signupFn: func(_ context.Context, _ domain.User) (domain.User, error) {
				return domain.User{}, service.ErrUnderage
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(validBody))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 409 on a duplicate username", func(t *testing.T) {
		svc := &fakeAuthService{
			signupFn: func(_ context.Context, _ domain.User) (domain.User, error) {
				return domain.User{}, service.ErrUsernameExists
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(validBody))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	const validBody = `{"username": "alice", "password": "secretpw1"}`

	t.Run("returns 200 with a token", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(_ context.Context, username, _ string) (domain.User, error) {
				return domain.User{ID: 1, Username: username}, nil
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(validBody))
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token"`)
	})

	t.Run("returns 401 on wrong credentials", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(_ context.Context, _, _ string) (domain.User, error) {
				return domain.User{}, service.ErrWrongPassword
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(validBody))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns 401 on an unknown user", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(_ context.Context, _, _ string) (domain.User, error) {
				return domain.User{}, service.ErrUserNotFound
			},
		}
		router := newAuthTestRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(validBody))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
