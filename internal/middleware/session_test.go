package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lead_capture_backend/internal/common"
	"lead_capture_backend/internal/config"
	"lead_capture_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockSessionService is a mock type for shared.SessionService
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Issue(sess *shared.Session) (string, time.Time, error) {
	args := m.Called(sess)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockSessionService) Validate(token string) (*shared.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Session), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{SessionCookieName: "lead_session"}
}

func setupSessionMiddlewareRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", mw, func(c *gin.Context) {
		sess := GetSessionFromContext(c)
		c.JSON(http.StatusOK, gin.H{"email": sess.Email})
	})
	return router
}

func TestRequireSession_NoToken(t *testing.T) {
	sessions := new(MockSessionService)
	router := setupSessionMiddlewareRouter(RequireSession(sessions, testConfig(), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	sessions.AssertNotCalled(t, "Validate", mock.Anything)
}

func TestRequireSession_InvalidToken(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Validate", "bad-token").Return(nil, assert.AnError)
	router := setupSessionMiddlewareRouter(RequireSession(sessions, testConfig(), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "lead_session", Value: "bad-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestRequireSession_ValidCookie(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Validate", "good-token").Return(&shared.Session{Email: "user@example.com"}, nil)
	router := setupSessionMiddlewareRouter(RequireSession(sessions, testConfig(), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "lead_session", Value: "good-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"user@example.com"}`, rec.Body.String())
}

func TestRequireSession_BearerFallback(t *testing.T) {
	sessions := new(MockSessionService)
	sessions.On("Validate", "bearer-token").Return(&shared.Session{Email: "user@example.com"}, nil)
	router := setupSessionMiddlewareRouter(RequireSession(sessions, testConfig(), zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(common.AuthorizationHeader, "Bearer bearer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSessionPage_RedirectsToSignIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := new(MockSessionService)
	router := gin.New()
	router.GET("/contacts", RequireSessionPage(sessions, testConfig(), "/auth/signin"), func(c *gin.Context) {
		c.String(http.StatusOK, "form")
	})

	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/signin", rec.Header().Get("Location"))
}

func TestRequireSessionPage_AllowsAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := new(MockSessionService)
	sessions.On("Validate", "good-token").Return(&shared.Session{Email: "user@example.com"}, nil)
	router := gin.New()
	router.GET("/contacts", RequireSessionPage(sessions, testConfig(), "/auth/signin"), func(c *gin.Context) {
		c.String(http.StatusOK, "form")
	})

	req := httptest.NewRequest(http.MethodGet, "/contacts", nil)
	req.AddCookie(&http.Cookie{Name: "lead_session", Value: "good-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "form", rec.Body.String())
}

func TestRedirectIfAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sessions := new(MockSessionService)
	sessions.On("Validate", "good-token").Return(&shared.Session{Email: "user@example.com"}, nil)
	router := gin.New()
	router.GET("/auth/signin", RedirectIfAuthenticated(sessions, testConfig(), "/contacts"), func(c *gin.Context) {
		c.String(http.StatusOK, "sign in page")
	})

	t.Run("authenticated visitor bounces to the form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/signin", nil)
		req.AddCookie(&http.Cookie{Name: "lead_session", Value: "good-token"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/contacts", rec.Header().Get("Location"))
	})

	t.Run("anonymous visitor sees the page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/signin", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "sign in page", rec.Body.String())
	})
}
