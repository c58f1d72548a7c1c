package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP router with logging, recovery, CORS and the
// certificate routes.
func NewRouter(cfg HandlerConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.L()
	}

	r := gin.New()
	r.Use(RequestID())
	// Logs all requests, like a combined access and error log, in UTC.
	r.Use(ginzap.GinzapWithConfig(log, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Context: func(c *gin.Context) []zap.Field {
			return []zap.Field{zap.String("request_id", requestID(c))}
		},
	}))
	r.Use(ginzap.RecoveryWithZap(log, true))
	r.Use(cors.Default())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterCertificateRoutes(r, cfg)

	return r
}
