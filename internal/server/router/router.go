package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ovolab/eggcost/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(costs *handlers.CostHandler, reports *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/ingredients", costs.ListIngredients)
		api.POST("/ingredients", costs.CreateIngredient)
		api.PATCH("/ingredients/:id", costs.UpdateIngredient)
		api.DELETE("/ingredients/:id", costs.DeleteIngredient)

		api.GET("/extra-costs", costs.ListExtraCosts)
		api.POST("/extra-costs", costs.CreateExtraCost)
		api.PATCH("/extra-costs/:id", costs.UpdateExtraCost)
		api.DELETE("/extra-costs/:id", costs.DeleteExtraCost)

		api.GET("/settings", costs.GetSettings)
		api.PUT("/settings", costs.UpdateSettings)
		api.GET("/summary", costs.GetSummary)

		api.GET("/report", reports.DownloadCSV)
		api.POST("/report/sheets", reports.PushToSheet)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
