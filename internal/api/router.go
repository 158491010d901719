package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"healthy-bite-selector/internal/app"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	JWTSecret   string   // empty disables auth on /api
	CORSOrigins []string // empty allows any origin
	Logger      *zap.Logger
}

// NewRouter builds the HTTP surface over a.
func NewRouter(a *app.App, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: len(opts.CORSOrigins) > 0,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = opts.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := NewHandler(a, logger)
	api := r.Group("/api")
	if opts.JWTSecret != "" {
		api.Use(AuthMiddleware(opts.JWTSecret))
	}
	{
		api.GET("/foods", h.ListFoods)
		api.POST("/foods", h.AddFood)
		api.DELETE("/foods/:index", h.RemoveFood)
		api.POST("/foods/pick", h.PickFood)
		api.POST("/foods/import", h.ImportFoods)

		api.GET("/catalog", h.Catalog)

		api.POST("/plans", h.GeneratePlan)
		api.GET("/plans/current", h.CurrentPlan)
		api.GET("/plans/current/export", h.ExportPlan)
		api.GET("/shopping-list", h.ShoppingList)

		api.GET("/favorites", h.ListFavorites)
		api.POST("/favorites", h.AddFavorite)
		api.DELETE("/favorites/:id", h.RemoveFavorite)

		api.GET("/history", h.History)
		api.GET("/metrics", h.Metrics)
	}

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
