package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /
func Root(c *gin.Context) {
	RespondOK(c, gin.H{
		"ok": true,
		"endpoints": []string{
			"/intel/videos",
			"/api/ramps",
			"/api/videos/{video_id}/baits",
			"/api/baits/summary",
			"/api/baits/ingest",
		},
	})
}

// GET /healthcheck
func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
