package console

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jayeuse/Inventory-System-sub000/internal/auth"
	"github.com/jayeuse/Inventory-System-sub000/internal/export"
	"github.com/jayeuse/Inventory-System-sub000/internal/rate_limiter"
	custom_error "github.com/jayeuse/Inventory-System-sub000/pkg/errors"
	"github.com/jayeuse/Inventory-System-sub000/pkg/security"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

const (
	loginAttempts = 10
	loginWindow   = 5 * time.Minute

	contextSession = "consoleSession"
)

type Handler struct {
	sessions    *SessionStore
	tokens      *security.TokenService
	rateLimiter *rate_limiter.RateLimiter
	logger      *zap.Logger
	now         func() time.Time
}

func NewHandler(sessions *SessionStore, tokens *security.TokenService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions:    sessions,
		tokens:      tokens,
		rateLimiter: rate_limiter.NewRateLimiter(loginAttempts, loginWindow),
		logger:      logger,
		now:         time.Now,
	}
}

// Close stops background work owned by the handler.
func (h *Handler) Close() {
	h.rateLimiter.Stop()
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	authRoutes := router.Group("/auth", h.rateLimit())
	{
		authRoutes.POST("/login", h.login)
		authRoutes.POST("/verify-otp", h.verifyOTP)
		authRoutes.POST("/resend-otp", h.resendOTP)
		authRoutes.POST("/forgot-password", h.forgotPassword)
		authRoutes.POST("/request-reset", h.requestReset)
		authRoutes.POST("/verify-reset-otp", h.verifyResetOTP)
		authRoutes.POST("/resend-reset-otp", h.resendResetOTP)
		authRoutes.POST("/reset-password", h.resetPassword)
		authRoutes.POST("/back", h.backToLogin)
	}

	protected := router.Group("", h.tokens.JWTMiddleware(), h.requireSession())
	{
		protected.GET("/me", h.me)
		protected.GET("/resources", h.resources)
		protected.GET("/views/:resource", h.view)
		protected.GET("/export/:resource", h.export)
		protected.GET("/alerts", h.alerts)
		protected.GET("/dashboard", h.dashboard)
		protected.GET("/notifications", h.notifications)
		protected.DELETE("/notifications/:id", h.dismissNotification)
		protected.POST("/:resource/:id/archive", h.archive(true))
		protected.POST("/:resource/:id/unarchive", h.archive(false))
		protected.POST("/logout", h.logout)
	}
}

// clientKey identifies a caller for rate limiting. Private addresses are
// shared by many users behind a proxy, so the user agent is appended.
func clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}
	if strings.Contains(clientIP, ",") {
		clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])
	}
	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}
	return clientIP
}

var privatePrefixes = []string{
	"10.", "172.16.", "172.17.", "172.18.", "172.19.", "172.20.", "172.21.",
	"172.22.", "172.23.", "172.24.", "172.25.", "172.26.", "172.27.", "172.28.",
	"172.29.", "172.30.", "172.31.", "192.168.", "127.", "169.254.",
	"::1", "fc00::", "fe80::",
}

func isPrivateIP(ip string) bool {
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}

func (h *Handler) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c)
		if h.rateLimiter.IsAllowed(key) {
			c.Next()
			return
		}

		remaining := h.rateLimiter.GetRemainingRequests(key)
		resetAt := h.rateLimiter.ResetAt().Format(time.RFC3339)
		c.Header("X-RateLimit-Limit", strconv.Itoa(h.rateLimiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":     "Too many sign-in attempts. Please try again later.",
			"remaining": remaining,
			"reset_at":  resetAt,
		})
	}
}

// requireSession resolves the console session named by the token.
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetString(security.ContextSessionID)
		session, ok := h.sessions.Get(id)
		if !ok || session.User() == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please sign in again"})
			return
		}
		c.Set(contextSession, session)
		c.Next()
	}
}

func currentSession(c *gin.Context) *Session {
	return c.MustGet(contextSession).(*Session)
}

// statusFor maps service errors onto console response codes.
func statusFor(err error) int {
	var httpErr custom_error.CustomError
	switch {
	case errors.Is(err, validator.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrWrongCard), errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.Is(err, export.ErrUnsupported):
		return http.StatusBadRequest
	case errors.As(err, &httpErr):
		if status := httpErr.StatusCode(); status >= 400 && status < 500 {
			return status
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) fail(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}
