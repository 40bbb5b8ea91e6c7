package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func corsEngine(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cors := TokenCORS(allowed)
	r.POST("/token", cors, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.OPTIONS("/token", cors)
	return r
}

func TestTokenCORSAllowedOrigin(t *testing.T) {
	r := corsEngine([]string{"https://spa.example", " "})

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.Header.Set("Origin", "https://spa.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "https://spa.example", w.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestTokenCORSPreflight(t *testing.T) {
	r := corsEngine([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/token", nil)
	req.Header.Set("Origin", "https://any.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, corsMethods, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestTokenCORSUnknownOrigin(t *testing.T) {
	r := corsEngine(nil)

	req := httptest.NewRequest(http.MethodPost, "/token", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
