package app

import (
	"strings"

	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/utils"
)

type Config struct {
	Port          string
	DBPath        string
	CacheDir      string
	YouTubeAPIKey string
	RampsLayerURL string
	CORSOrigins   []string
}

func LoadConfig(log *logger.Logger) Config {
	origins := strings.Split(utils.GetEnv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173", log), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return Config{
		Port:          utils.GetEnv("PORT", "8000", log),
		DBPath:        utils.GetEnv("RAYBURN_DB_PATH", "data/rayburn.db", log),
		CacheDir:      utils.GetEnv("CACHE_DIR", ".cache", log),
		YouTubeAPIKey: utils.GetEnv("YOUTUBE_API_KEY", "", log),
		RampsLayerURL: utils.GetEnv("RAYBURN_ACCESS_POINTS_LAYER_URL", "", log),
		CORSOrigins:   origins,
	}
}
