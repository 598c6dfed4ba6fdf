package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rayburnranger/backend/internal/apperr"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/services"
)

type BaitHandler struct {
	log         *logger.Logger
	baitService services.BaitService
}

func NewBaitHandler(log *logger.Logger, baitService services.BaitService) *BaitHandler {
	return &BaitHandler{
		log:         log.With("handler", "BaitHandler"),
		baitService: baitService,
	}
}

// ingestPayload accepts both snake_case and the camelCase aliases the
// transcript tooling emits. normalize() maps it onto the canonical service
// input; nothing past this point branches on alternate field names.
type ingestPayload struct {
	Video ingestVideo `json:"video"`
	Hits  []ingestHit `json:"hits"`
}

type ingestVideo struct {
	VideoID      string `json:"video_id"`
	VideoIDAlt   string `json:"videoId"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	ChannelTitle string `json:"channelTitle"`
	Published    string `json:"published"`
	PublishedAt  string `json:"publishedAt"`
	URL          string `json:"url"`
	Thumbnail    string `json:"thumbnail"`
	Source       string `json:"source"`
}

type ingestHit struct {
	BaitName   string   `json:"bait_name"`
	Name       string   `json:"name"`
	BaitText   string   `json:"bait_text"`
	Snippet    string   `json:"snippet"`
	TStart     *float64 `json:"t_start"`
	TEnd       *float64 `json:"t_end"`
	Confidence *int     `json:"confidence"`
	Category   string   `json:"category"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (p *ingestPayload) normalize() (services.VideoInput, []services.RawHit) {
	video := services.VideoInput{
		VideoID:   firstNonEmpty(p.Video.VideoID, p.Video.VideoIDAlt),
		Title:     p.Video.Title,
		Channel:   firstNonEmpty(p.Video.Channel, p.Video.ChannelTitle),
		Published: firstNonEmpty(p.Video.Published, p.Video.PublishedAt),
		URL:       p.Video.URL,
		Thumbnail: p.Video.Thumbnail,
		Source:    p.Video.Source,
	}
	hits := make([]services.RawHit, 0, len(p.Hits))
	for _, h := range p.Hits {
		hits = append(hits, services.RawHit{
			BaitName:   firstNonEmpty(h.BaitName, h.Name),
			BaitText:   h.BaitText,
			Snippet:    h.Snippet,
			TStart:     h.TStart,
			TEnd:       h.TEnd,
			Confidence: h.Confidence,
			Category:   h.Category,
		})
	}
	return video, hits
}

// POST /api/baits/ingest
func (h *BaitHandler) Ingest(c *gin.Context) {
	var payload ingestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_payload", err)
		return
	}
	video, hits := payload.normalize()
	inserted, err := h.baitService.Ingest(c.Request.Context(), video, hits)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"ok": true, "video_id": video.VideoID, "inserted": inserted})
}

// GET /api/videos/:video_id/baits
func (h *BaitHandler) HitsForVideo(c *gin.Context) {
	videoID := c.Param("video_id")
	items, err := h.baitService.HitsForVideo(c.Request.Context(), videoID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"video_id": videoID, "items": items})
}

// GET /api/baits/summary?limit=25
func (h *BaitHandler) Summary(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if err != nil || limit < 1 {
		RespondDomainError(c, apperr.InvalidArgumentf("limit must be a positive integer"))
		return
	}
	items, err := h.baitService.Summary(c.Request.Context(), limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"items": items})
}
