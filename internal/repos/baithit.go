package repos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/rayburnranger/backend/internal/apperr"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/types"
)

type BaitHitRepo interface {
	Insert(ctx context.Context, tx *gorm.DB, hits []*types.BaitHit) (int, error)
	ListForVideo(ctx context.Context, tx *gorm.DB, videoID string) ([]types.VideoBaitHit, error)
	Summary(ctx context.Context, tx *gorm.DB, limit int) ([]types.BaitSummary, error)
}

type baitHitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBaitHitRepo(db *gorm.DB, baseLog *logger.Logger) BaitHitRepo {
	return &baitHitRepo{db: db, log: baseLog.With("repo", "BaitHitRepo")}
}

// Insert appends hit rows. Hits referencing a missing video or bait fail with
// ErrReferentialIntegrity; nothing about an existing row is ever updated.
func (r *baitHitRepo) Insert(ctx context.Context, tx *gorm.DB, hits []*types.BaitHit) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(hits) == 0 {
		return 0, nil
	}
	for _, hit := range hits {
		if hit.CreatedAt.IsZero() {
			hit.CreatedAt = time.Now().UTC()
		}
	}
	if err := transaction.WithContext(ctx).Create(hits).Error; err != nil {
		if isForeignKeyViolation(err) {
			return 0, apperr.ReferentialIntegrityf("insert bait hits: %v", err)
		}
		return 0, fmt.Errorf("insert bait hits: %w", err)
	}
	return len(hits), nil
}

func (r *baitHitRepo) ListForVideo(ctx context.Context, tx *gorm.DB, videoID string) ([]types.VideoBaitHit, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var rows []types.VideoBaitHit
	err := transaction.WithContext(ctx).
		Table("bait_hits AS bh").
		Select("bh.hit_id, bh.video_id, b.name AS bait_name, b.category, bh.bait_text, bh.snippet, bh.t_start, bh.t_end, bh.confidence, bh.created_at").
		Joins("JOIN baits b ON b.bait_id = bh.bait_id").
		Joins("JOIN videos v ON v.video_id = bh.video_id").
		Where("bh.video_id = ?", videoID).
		Order("bh.created_at DESC, bh.hit_id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list hits for video %s: %w", videoID, err)
	}
	return rows, nil
}

// Summary ranks baits across all videos by hit count. Ties break on bait name
// ascending so the ordering is deterministic and testable.
func (r *baitHitRepo) Summary(ctx context.Context, tx *gorm.DB, limit int) ([]types.BaitSummary, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 25
	}
	var rows []types.BaitSummary
	err := transaction.WithContext(ctx).
		Table("bait_hits AS bh").
		Select("b.name AS bait_name, b.category, COUNT(*) AS hits, COUNT(DISTINCT bh.video_id) AS videos").
		Joins("JOIN baits b ON b.bait_id = bh.bait_id").
		Group("b.bait_id").
		Order("hits DESC, b.name ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("bait summary: %w", err)
	}
	return rows, nil
}

// isForeignKeyViolation covers both gorm's translated error and the raw
// sqlite message, since translation depends on driver configuration.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
