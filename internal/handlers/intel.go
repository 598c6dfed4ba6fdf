package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/services"
)

const (
	defaultIntelQuery      = "Sam Rayburn fishing"
	defaultIntelMaxResults = 12
	defaultIntelTTLSeconds = 6 * 60 * 60
)

var (
	errMaxResultsRange = errors.New("max_results must be between 1 and 50")
	errTTLRange        = errors.New("ttl_seconds must not be negative")
)

type IntelHandler struct {
	log          *logger.Logger
	intelService services.IntelService
}

func NewIntelHandler(log *logger.Logger, intelService services.IntelService) *IntelHandler {
	return &IntelHandler{
		log:          log.With("handler", "IntelHandler"),
		intelService: intelService,
	}
}

// GET /intel/videos?q=...&max_results=12&ttl_seconds=21600
func (h *IntelHandler) Videos(c *gin.Context) {
	query := c.DefaultQuery("q", defaultIntelQuery)

	maxResults, err := strconv.Atoi(c.DefaultQuery("max_results", strconv.Itoa(defaultIntelMaxResults)))
	if err != nil || maxResults < 1 || maxResults > 50 {
		RespondError(c, http.StatusBadRequest, "bad_query", errMaxResultsRange)
		return
	}
	ttlSeconds, err := strconv.Atoi(c.DefaultQuery("ttl_seconds", strconv.Itoa(defaultIntelTTLSeconds)))
	if err != nil || ttlSeconds < 0 {
		RespondError(c, http.StatusBadRequest, "bad_query", errTTLRange)
		return
	}

	source, items, err := h.intelService.Search(c.Request.Context(), query, maxResults, time.Duration(ttlSeconds)*time.Second)
	if err != nil {
		RespondError(c, http.StatusBadGateway, "upstream", err)
		return
	}
	RespondOK(c, gin.H{"source": source, "items": items})
}
