package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/rayburnranger/backend/internal/apperr"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/repos"
	"github.com/rayburnranger/backend/internal/taxonomy"
	"github.com/rayburnranger/backend/internal/types"
)

// DefaultHitConfidence is used when a raw hit arrives without a score.
const DefaultHitConfidence = 70

// VideoInput is the canonical video record after boundary normalization. The
// HTTP layer and the batch runner both map their loose shapes onto this; the
// core never sees alternate field names.
type VideoInput struct {
	VideoID   string
	Title     string
	Channel   string
	Published string
	URL       string
	Thumbnail string
	Source    string
}

// RawHit is one caller-supplied hit record before resolution.
type RawHit struct {
	BaitName   string
	BaitText   string
	Snippet    string
	TStart     *float64
	TEnd       *float64
	Confidence *int
	Category   string
}

type BaitService interface {
	// Ingest upserts the video and appends its hits in one transaction,
	// returning how many hit rows were written. Hits without a bait name
	// are skipped with a warning, not failed.
	Ingest(ctx context.Context, video VideoInput, hits []RawHit) (int, error)
	HitsForVideo(ctx context.Context, videoID string) ([]types.VideoBaitHit, error)
	Summary(ctx context.Context, limit int) ([]types.BaitSummary, error)
}

type baitService struct {
	db          *gorm.DB
	log         *logger.Logger
	reg         *taxonomy.Registry
	videoRepo   repos.VideoRepo
	baitRepo    repos.BaitRepo
	baitHitRepo repos.BaitHitRepo
}

func NewBaitService(
	db *gorm.DB,
	baseLog *logger.Logger,
	reg *taxonomy.Registry,
	videoRepo repos.VideoRepo,
	baitRepo repos.BaitRepo,
	baitHitRepo repos.BaitHitRepo,
) BaitService {
	return &baitService{
		db:          db,
		log:         baseLog.With("service", "BaitService"),
		reg:         reg,
		videoRepo:   videoRepo,
		baitRepo:    baitRepo,
		baitHitRepo: baitHitRepo,
	}
}

func (s *baitService) Ingest(ctx context.Context, video VideoInput, hits []RawHit) (int, error) {
	videoID := strings.TrimSpace(video.VideoID)
	if videoID == "" {
		return 0, apperr.InvalidArgumentf("video.video_id is required")
	}
	source := video.Source
	if source == "" {
		source = "ingest"
	}

	inserted := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &types.Video{
			VideoID:   videoID,
			Title:     video.Title,
			Channel:   video.Channel,
			Published: video.Published,
			URL:       video.URL,
			Thumbnail: video.Thumbnail,
			Source:    source,
		}
		if err := s.videoRepo.Upsert(ctx, tx, row); err != nil {
			return err
		}

		for i, h := range hits {
			name := strings.TrimSpace(h.BaitName)
			if name == "" {
				s.log.Warn("skipping hit without bait name", "video_id", videoID, "hit_index", i)
				continue
			}
			var category *string
			if c := s.reg.NormalizeCategory(h.Category); c != "" {
				category = &c
			}
			bait, err := s.baitRepo.EnsureByName(ctx, tx, name, category)
			if err != nil {
				return err
			}
			confidence := DefaultHitConfidence
			if h.Confidence != nil {
				confidence = *h.Confidence
			}
			hit := &types.BaitHit{
				VideoID:    videoID,
				BaitID:     bait.BaitID,
				BaitText:   h.BaitText,
				Snippet:    h.Snippet,
				TStart:     h.TStart,
				TEnd:       h.TEnd,
				Confidence: confidence,
				Source:     source,
			}
			if _, err := s.baitHitRepo.Insert(ctx, tx, []*types.BaitHit{hit}); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		s.log.Error("ingest failed", "video_id", videoID, "error", err)
		return 0, err
	}
	s.log.Info("ingested bait hits", "video_id", videoID, "inserted", inserted, "supplied", len(hits))
	return inserted, nil
}

func (s *baitService) HitsForVideo(ctx context.Context, videoID string) ([]types.VideoBaitHit, error) {
	return s.baitHitRepo.ListForVideo(ctx, nil, videoID)
}

func (s *baitService) Summary(ctx context.Context, limit int) ([]types.BaitSummary, error) {
	return s.baitHitRepo.Summary(ctx, nil, limit)
}
