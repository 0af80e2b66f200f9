package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"induk-agents/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
// jwtSvc nil deja las rutas de conversacion abiertas; metricsHandler nil omite /metrics.
func NewRouter(
	logger *zap.Logger,
	convH *ConversationHandler,
	authH *AuthHandler,
	jwtSvc *service.JWTService,
	metricsHandler http.Handler,
) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	api := r.Group("", jsonContentTypeMiddleware())
	api.GET("/agents", convH.ListAgents)
	if authH != nil {
		api.POST("/auth/token", authH.IssueToken)
	}

	conversations := api.Group("/conversations")
	if jwtSvc != nil {
		conversations.Use(OperatorAuthMiddleware(logger, jwtSvc))
	}
	conversations.POST("", convH.CreateConversation)
	conversations.GET("/:id", convH.GetConversation)
	conversations.POST("/:id/messages", convH.PostMessage)
	conversations.GET("/:id/transcript", convH.GetTranscript)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
