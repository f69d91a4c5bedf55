package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jayeuse/Inventory-System-sub000/internal/console"
	"github.com/jayeuse/Inventory-System-sub000/internal/core/container"
	"github.com/jayeuse/Inventory-System-sub000/internal/core/routes"
	"github.com/jayeuse/Inventory-System-sub000/internal/middleware"
	"github.com/jayeuse/Inventory-System-sub000/pkg/security"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is reported by /health.
var Version = "1.0.0"

const (
	pendingSessionTTL = 15 * time.Minute
	shutdownTimeout   = 10 * time.Second
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr           string
		requestTimeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve list views, exports and sign-in to browsers over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.AppHost
			}
			tokens, err := security.NewTokenService(a.cfg.JWTSecret, a.cfg.TokenTTL)
			if err != nil {
				return err
			}

			sessions := console.NewSessionStore(func() (*container.Container, error) {
				return container.New(a.cfg, a.currency, a.logger)
			}, a.logger)
			handler := console.NewHandler(sessions, tokens, a.logger)
			defer handler.Close()

			gin.SetMode(gin.ReleaseMode)
			health := middleware.NewHealth(Version, a.cfg.APIURL, sessions.Len)
			router := routes.NewRouter(handler, health, routes.Options{
				AllowedOrigins: a.cfg.AllowedOrigins,
				RequestTimeout: requestTimeout,
			}, a.logger)

			return serve(cmd.Context(), &http.Server{Addr: addr, Handler: router}, sessions, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (env APP_HOST)")
	cmd.Flags().DurationVar(&requestTimeout, "request-timeout", 30*time.Second, "deadline for one console request")
	return cmd
}

// serve runs srv until ctx is cancelled, pruning abandoned sign-ins meanwhile.
func serve(ctx context.Context, srv *http.Server, sessions *console.SessionStore, logger *zap.Logger) error {
	errs := make(chan error, 1)
	go func() {
		logger.Info("Console server listening", zap.String("addr", srv.Addr))
		errs <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case err := <-errs:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ticker.C:
			if removed := sessions.Prune(pendingSessionTTL); removed > 0 {
				logger.Debug("Pruned pending console sessions", zap.Int("removed", removed))
			}
		case <-ctx.Done():
			logger.Info("Shutting down console server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}
