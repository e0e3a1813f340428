package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/lodestar-learning/lodestar-backend/internal/http/handlers"
	httpMW "github.com/lodestar-learning/lodestar-backend/internal/http/middleware"
	"github.com/lodestar-learning/lodestar-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler   *httpH.HealthHandler
	PathHandler     *httpH.PathHandler
	GraphHandler    *httpH.GraphHandler
	ProgressHandler *httpH.ProgressHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("lodestar-backend"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.PathHandler != nil {
			api.GET("/path/resolve", cfg.PathHandler.Resolve)
		}

		if cfg.GraphHandler != nil {
			api.GET("/graph", cfg.GraphHandler.Full)
			api.GET("/graph/neighborhood/:name", cfg.GraphHandler.Neighborhood)
		}

		if cfg.ProgressHandler != nil {
			api.GET("/concepts/unlocked", cfg.ProgressHandler.Unlocked)
			api.GET("/concepts/:name/prerequisites/check", cfg.ProgressHandler.CheckPrerequisites)
			api.POST("/concepts/:name/progress/start", cfg.ProgressHandler.Start)
			api.POST("/concepts/:name/progress/complete", cfg.ProgressHandler.Complete)
		}
	}

	return r
}
