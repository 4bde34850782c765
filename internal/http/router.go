package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bicosteve/job-board-api/internal/security"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	codec *security.TokenCodec,
	authH *AuthHandler,
	jobH *JobHandler,
	appH *ApplicationHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	base := r.Group("/v0/api")
	base.GET("/health", healthCheck)

	profile := base.Group("/profile")
	profile.POST("/register", authH.Register)
	profile.POST("/verify", authH.Verify)
	profile.POST("/login", authH.Login)
	profile.POST("/request-reset", authH.RequestReset)
	profile.POST("/reset-password", authH.ResetPassword)
	profile.GET("/me", AuthMiddleware(codec), authH.Me)

	// El registro de admins queda abierto igual que en el resto de los
	// flujos de alta: la cuenta nace sin verificar de todos modos.
	base.POST("/admin/register", authH.RegisterAdmin)

	authed := base.Group("", AuthMiddleware(codec))
	authed.GET("/jobs", jobH.ListJobs)
	authed.GET("/jobs/:id", jobH.GetJob)
	authed.POST("/jobs/:id/applications", appH.Apply)
	authed.GET("/applications", appH.ListMyApplications)

	admin := base.Group("", AuthMiddleware(codec), RequireAdmin())
	admin.PUT("/admin/deactivate", authH.Deactivate)
	admin.POST("/jobs", jobH.CreateJob)
	admin.PUT("/jobs/:id", jobH.UpdateJob)
	admin.GET("/jobs/:id/applications", appH.ListJobApplications)
	admin.PUT("/applications/:id", appH.UpdateApplication)

	return r
}

func healthCheck(c *gin.Context) {
	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"time": now.Format("15:04:05"),
			"date": now.Format("2006-01-02"),
			"msg":  "App is running successfully",
		},
	})
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
