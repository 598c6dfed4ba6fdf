package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rayburnranger/backend/internal/cache"
	"github.com/rayburnranger/backend/internal/clients/youtube"
	"github.com/rayburnranger/backend/internal/logger"
)

// Intel sources, reported back to the caller so it can tell a cache hit from
// a live fetch.
const (
	SourceCache = "cache"
	SourceAPI   = "api"
)

type IntelService interface {
	// Search returns video metadata for the query, served from the disk
	// cache when a fresh entry exists.
	Search(ctx context.Context, query string, maxResults int, ttl time.Duration) (string, []youtube.VideoItem, error)
}

type intelService struct {
	log   *logger.Logger
	yt    *youtube.Client
	cache *cache.Cache
	group singleflight.Group
}

func NewIntelService(baseLog *logger.Logger, yt *youtube.Client, c *cache.Cache) IntelService {
	return &intelService{
		log:   baseLog.With("service", "IntelService"),
		yt:    yt,
		cache: c,
	}
}

func (s *intelService) Search(ctx context.Context, query string, maxResults int, ttl time.Duration) (string, []youtube.VideoItem, error) {
	key := fmt.Sprintf("yt::%s::%d", query, maxResults)

	if raw, ok := s.cache.Read(key, ttl); ok {
		var items []youtube.VideoItem
		if err := json.Unmarshal(raw, &items); err == nil {
			return SourceCache, items, nil
		}
		s.log.Warn("discarding unreadable cache entry", "key", key)
	}

	// Concurrent requests for the same key share one upstream fetch.
	v, err, _ := s.group.Do(key, func() (any, error) {
		items, err := s.yt.Search(ctx, query, maxResults)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Write(key, items); err != nil {
			s.log.Warn("cache write failed", "key", key, "error", err)
		}
		return items, nil
	})
	if err != nil {
		return "", nil, err
	}
	return SourceAPI, v.([]youtube.VideoItem), nil
}
