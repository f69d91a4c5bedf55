package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jayeuse/Inventory-System-sub000/internal/console"
	"github.com/jayeuse/Inventory-System-sub000/internal/middleware"
	"go.uber.org/zap"
)

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter assembles the console server: shared middleware, utility routes
// and the console handler.
func NewRouter(handler *console.Handler, health *middleware.Health, opts Options, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestLogger(logger))
	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			ExposeHeaders:    []string{"Content-Disposition", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if opts.RequestTimeout > 0 {
		router.Use(middleware.TimeoutMiddleware(opts.RequestTimeout))
	}

	RegisterUtilityRoutes(router, health)
	handler.RegisterRoutes(router)
	return router
}

func RegisterUtilityRoutes(router *gin.Engine, health *middleware.Health) {
	router.GET("/health", health.HealthCheckMiddleware())
}
