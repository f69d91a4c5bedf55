package middleware

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthStatus is the body served by /health.
type HealthStatus struct {
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
	Backend     string    `json:"backend,omitempty"`
	Sessions    int       `json:"sessions"`
}

// Health serves a cached status document, rebuilt at most once per cache
// window.
type Health struct {
	mu               sync.Mutex
	status           HealthStatus
	startTime        time.Time
	lastResponse     []byte
	lastResponseTime time.Time
	cacheDuration    time.Duration
	sessions         func() int
	now              func() time.Time
}

func NewHealth(version, backend string, sessions func() int) *Health {
	now := time.Now()
	return &Health{
		status:        HealthStatus{Status: "ok", LastChecked: now, Uptime: "0s", Version: version, Backend: backend},
		startTime:     now,
		cacheDuration: 5 * time.Second,
		sessions:      sessions,
		now:           time.Now,
	}
}

// HealthCheckMiddleware serves the health endpoint.
func (h *Health) HealthCheckMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		defer h.mu.Unlock()

		now := h.now()
		if h.lastResponse != nil && now.Sub(h.lastResponseTime) < h.cacheDuration {
			c.Data(http.StatusOK, "application/json", h.lastResponse)
			return
		}

		h.status.Uptime = now.Sub(h.startTime).Round(time.Second).String()
		h.status.LastChecked = now
		if h.sessions != nil {
			h.status.Sessions = h.sessions()
		}

		response, _ := json.Marshal(h.status)
		h.lastResponse = response
		h.lastResponseTime = now

		c.Data(http.StatusOK, "application/json", response)
	}
}

// UpdateHealthStatus changes the reported status and drops the cached body.
func (h *Health) UpdateHealthStatus(status string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.status.Status = status
	h.status.LastChecked = h.now()
	h.lastResponse = nil
}

func (h *Health) SetVersion(version string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.status.Version = version
	h.lastResponse = nil
}
