package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthCachesResponse(t *testing.T) {
	calls := 0
	h := NewHealth("1.2.0", "http://backend", func() int { calls++; return calls })
	router := gin.New()
	router.GET("/health", h.HealthCheckMiddleware())

	get := func() HealthStatus {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var status HealthStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		return status
	}

	first := get()
	assert.Equal(t, "ok", first.Status)
	assert.Equal(t, "1.2.0", first.Version)
	assert.Equal(t, 1, first.Sessions)
	assert.Equal(t, 1, get().Sessions)

	h.UpdateHealthStatus("degraded")
	second := get()
	assert.Equal(t, "degraded", second.Status)
	assert.Equal(t, 2, second.Sessions)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware(nil))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")
}

func TestTimeoutMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(TimeoutMiddleware(10 * time.Millisecond))
	router.GET("/slow", func(c *gin.Context) { <-c.Request.Context().Done() })
	router.GET("/fast", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
