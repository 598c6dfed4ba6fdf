package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/services"
)

type RampHandler struct {
	log         *logger.Logger
	rampService services.RampService
}

func NewRampHandler(log *logger.Logger, rampService services.RampService) *RampHandler {
	return &RampHandler{
		log:         log.With("handler", "RampHandler"),
		rampService: rampService,
	}
}

// GET /api/ramps — raw GeoJSON passthrough from the ArcGIS layer.
func (h *RampHandler) GeoJSON(c *gin.Context) {
	raw, err := h.rampService.GeoJSON(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadGateway, "upstream", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", raw)
}

// POST /api/ramps/sync — persist the layer's features as ramp rows.
func (h *RampHandler) Sync(c *gin.Context) {
	written, err := h.rampService.Sync(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadGateway, "upstream", err)
		return
	}
	RespondOK(c, gin.H{"ok": true, "ramps": written})
}

type linkPayload struct {
	Confidence *int `json:"confidence"`
}

// POST /api/videos/:video_id/ramps/:ramp_id/link
func (h *RampHandler) LinkVideo(c *gin.Context) {
	var payload linkPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			RespondError(c, http.StatusBadRequest, "bad_payload", err)
			return
		}
	}
	link, err := h.rampService.LinkVideo(c.Request.Context(), c.Param("video_id"), c.Param("ramp_id"), payload.Confidence)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, link)
}
