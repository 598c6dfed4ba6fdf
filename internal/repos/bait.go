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

type BaitRepo interface {
	EnsureByName(ctx context.Context, tx *gorm.DB, name string, category *string) (*types.Bait, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Bait, error)
}

type baitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBaitRepo(db *gorm.DB, baseLog *logger.Logger) BaitRepo {
	return &baitRepo{db: db, log: baseLog.With("repo", "BaitRepo")}
}

// EnsureByName resolves a bait by canonical name, creating it on first
// reference. Duplicate-name races land on the unique index: the insert is
// conflict-tolerant (do nothing) and the reselect returns whichever row won.
// An existing row's category is never overwritten.
func (r *baitRepo) EnsureByName(ctx context.Context, tx *gorm.DB, name string, category *string) (*types.Bait, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.InvalidArgumentf("bait name is empty")
	}

	existing, err := r.getByName(ctx, transaction, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	bait := &types.Bait{
		Name:      name,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	err = transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(bait).Error
	if err != nil {
		return nil, fmt.Errorf("create bait %q: %w", name, err)
	}
	return r.getByName(ctx, transaction, name)
}

func (r *baitRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Bait, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return r.getByName(ctx, transaction, strings.TrimSpace(name))
}

func (r *baitRepo) getByName(ctx context.Context, tx *gorm.DB, name string) (*types.Bait, error) {
	var bait types.Bait
	err := tx.WithContext(ctx).First(&bait, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("bait %q", name)
	}
	if err != nil {
		return nil, err
	}
	return &bait, nil
}
