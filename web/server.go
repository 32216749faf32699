// Package web exposes the engine over a JSON API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"ponto.app/ponto/web/common"
	"ponto.app/ponto/web/handlers/history"
	"ponto.app/ponto/web/handlers/punch"
	"ponto.app/ponto/web/middlewares"
)

// NewRouter wires every route. A nil secret leaves /api open.
func NewRouter(h *common.Handler, jwtSecret []byte) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		protected.GET("/whoami", func(c *gin.Context) {
			claims, _ := c.Get(middlewares.ClaimsKey)
			c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{"claims": claims}))
		})
		punch.Register(protected, h)
		history.Register(protected, h)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.NewErrorResponse("not found"))
	})

	return r
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
