package repos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rayburnranger/backend/internal/apperr"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/types"
)

type VideoRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, video *types.Video) error
	GetByID(ctx context.Context, tx *gorm.DB, videoID string) (*types.Video, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

// Upsert inserts the video or refreshes every mutable field of an existing
// row. video_id and created_at are never touched on conflict.
func (r *videoRepo) Upsert(ctx context.Context, tx *gorm.DB, video *types.Video) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if strings.TrimSpace(video.VideoID) == "" {
		return apperr.InvalidArgumentf("video_id is empty")
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now().UTC()
	}
	err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "channel", "published", "url", "thumbnail", "source",
		}),
	}).Create(video).Error
	if err != nil {
		return fmt.Errorf("upsert video %s: %w", video.VideoID, err)
	}
	return nil
}

func (r *videoRepo) GetByID(ctx context.Context, tx *gorm.DB, videoID string) (*types.Video, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var video types.Video
	err := transaction.WithContext(ctx).First(&video, "video_id = ?", videoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("video %s", videoID)
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}
