package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jassler1/el-refugio-de-las-gibas/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-32-chars-minimum!!"

func signToken(t *testing.T, userID, typ string, dur time.Duration) string {
	t.Helper()
	claims := middleware.JWTClaims{
		UserID: userID,
		Typ:    typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(dur)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func ginTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.JWTAuth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"owner": middleware.GetOwner(c).String()})
	})
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestProtectedEndpoint_NoToken(t *testing.T) {
	w := get(ginTestRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpoint_AccessToken(t *testing.T) {
	owner := uuid.New()
	w := get(ginTestRouter(), signToken(t, owner.String(), "access", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), owner.String())
}

func TestProtectedEndpoint_RefreshTokenRejected(t *testing.T) {
	w := get(ginTestRouter(), signToken(t, uuid.New().String(), "refresh", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpoint_ExpiredToken(t *testing.T) {
	w := get(ginTestRouter(), signToken(t, uuid.New().String(), "access", -time.Second))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpoint_OwnerNotUUID(t *testing.T) {
	w := get(ginTestRouter(), signToken(t, "admin", "access", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID_EchoesOrGenerates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(middleware.RequestIDKey)) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(middleware.RequestIDHeader))
}
