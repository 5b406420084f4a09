package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tgavazzi/hydromate/internal/app"
)

// Registrar is the common interface for all API service registrars.
// Public routes skip authentication; protected routes run behind the
// JWT middleware.
type Registrar interface {
	Register(public, protected *gin.RouterGroup)
}

// NewRouter assembles the gin engine with middleware, health and
// metrics endpoints, and all registered services.
func NewRouter(appCtx *app.AppContext, registrars ...Registrar) *gin.Engine {
	if appCtx.Cfg.App.ENV != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	registerMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(RequestLogger(appCtx))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/api")
	protected := r.Group("/api")
	protected.Use(AuthRequired(appCtx))

	for _, reg := range registrars {
		reg.Register(public, protected)
	}

	return r
}

// Start serves the handler and blocks until SIGINT/SIGTERM, then
// drains in-flight requests before returning.
func Start(appCtx *app.AppContext, handler http.Handler) error {
	addr := appCtx.Cfg.HTTP.Host + ":" + appCtx.Cfg.HTTP.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appCtx.Logger.Info("starting HTTP server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		appCtx.Logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
