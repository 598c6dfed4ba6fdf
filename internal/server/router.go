package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rayburnranger/backend/internal/handlers"
)

type RouterConfig struct {
	CORSOrigins  []string
	BaitHandler  *handlers.BaitHandler
	IntelHandler *handlers.IntelHandler
	RampHandler  *handlers.RampHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/", handlers.Root)
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/intel/videos", cfg.IntelHandler.Videos)

	api := router.Group("/api")
	{
		api.GET("/ramps", cfg.RampHandler.GeoJSON)
		api.POST("/ramps/sync", cfg.RampHandler.Sync)
		api.GET("/videos/:video_id/baits", cfg.BaitHandler.HitsForVideo)
		api.POST("/videos/:video_id/ramps/:ramp_id/link", cfg.RampHandler.LinkVideo)
		api.GET("/baits/summary", cfg.BaitHandler.Summary)
		api.POST("/baits/ingest", cfg.BaitHandler.Ingest)
	}

	return router
}
