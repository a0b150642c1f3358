// Package httpapi serves the read-only prompt catalog and operational
// endpoints over HTTP.
//
// Routes:
//   - GET /frankai/get_prompts: catalog entries as a JSON array ([] when empty)
//   - GET /healthz: liveness
//   - GET /metrics: Prometheus metrics
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ironsheep/banana-tools-mcp/internal/catalog"
)

// PromptsPath is the catalog query route.
const PromptsPath = "/frankai/get_prompts"

const shutdownTimeout = 5 * time.Second

// NewRouter builds the gin engine for the catalog.
//
// Stdout carries the MCP protocol, so gin's own output is sent to stderr and
// debug mode is off unless GIN_MODE asks for it.
func NewRouter(cat *catalog.Catalog) *gin.Engine {
	gin.DefaultWriter = os.Stderr
	gin.DefaultErrorWriter = os.Stderr
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET(PromptsPath, func(c *gin.Context) {
		c.JSON(http.StatusOK, cat.Entries())
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "prompts": cat.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// requestLogger logs each request at debug level through slog.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	slog.Info("http server stopped")
	return nil
}
