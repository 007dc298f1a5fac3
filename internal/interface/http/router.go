package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sameer-hoda/mynextpr-sub001/internal/domain/auth"
	"github.com/sameer-hoda/mynextpr-sub001/internal/infra/config"
)

// NewRouter assembles the middleware chain and routes, returning the
// http.Server the bootstrap runs. Retry wraps the whole gin engine so a
// replayed request passes through logging and auth again.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Healthz)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)

		protected := api.Group("")
		protected.Use(authMiddleware(authSvc))
		{
			protected.GET("/auth/me", handler.Me)
			protected.POST("/plans", handler.GeneratePlan)
			protected.GET("/plans/latest", handler.LatestPlan)
			protected.POST("/workouts/:id/complete", handler.CompleteWorkout)
		}
	}

	var root http.Handler = router
	root = withRetry(root, cfg.HTTP.Retry, handler.logger)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        root,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
