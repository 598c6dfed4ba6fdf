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

type RampRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, ramp *types.Ramp) error
	CreateLink(ctx context.Context, tx *gorm.DB, link *types.RampLink) error
}

type rampRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRampRepo(db *gorm.DB, baseLog *logger.Logger) RampRepo {
	return &rampRepo{db: db, log: baseLog.With("repo", "RampRepo")}
}

func (r *rampRepo) Upsert(ctx context.Context, tx *gorm.DB, ramp *types.Ramp) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if strings.TrimSpace(ramp.RampID) == "" {
		return apperr.InvalidArgumentf("ramp_id is empty")
	}
	if ramp.CreatedAt.IsZero() {
		ramp.CreatedAt = time.Now().UTC()
	}
	err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ramp_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "lat", "lng", "ramp_type", "raw_json",
		}),
	}).Create(ramp).Error
	if err != nil {
		return fmt.Errorf("upsert ramp %s: %w", ramp.RampID, err)
	}
	return nil
}

func (r *rampRepo) CreateLink(ctx context.Context, tx *gorm.DB, link *types.RampLink) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	if err := transaction.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return apperr.ReferentialIntegrityf("link video %s to ramp %s: %v", link.VideoID, link.RampID, err)
		}
		return fmt.Errorf("create ramp link: %w", err)
	}
	return nil
}
