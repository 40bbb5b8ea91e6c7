package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/config"
	"github.com/smallbiznis/codegrant/internal/http/handler"
	httpmiddleware "github.com/smallbiznis/codegrant/internal/http/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, authHandler *handler.AuthHandler, health *handler.HealthHandler, logger *zap.Logger) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(logger))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/", authHandler.Root)
	r.GET("/healthz", health.Healthz)

	r.GET("/authorize", authHandler.Authorize)
	r.POST("/login", authHandler.Login)
	cors := httpmiddleware.TokenCORS(cfg.CORSOrigins)
	r.POST("/token", cors, authHandler.Token)
	r.OPTIONS("/token", cors)

	return r
}
