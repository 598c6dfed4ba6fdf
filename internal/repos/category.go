package repos

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/taxonomy"
	"github.com/rayburnranger/backend/internal/types"
)

type CategoryRepo interface {
	Seed(ctx context.Context, tx *gorm.DB, reg *taxonomy.Registry) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

// Seed writes the registry's categories plus the fallback slug. Existing rows
// are left alone, so relabeling in the registry wins only on fresh stores.
func (r *categoryRepo) Seed(ctx context.Context, tx *gorm.DB, reg *taxonomy.Registry) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	categories := reg.Categories()
	rows := make([]types.BaitCategory, 0, len(categories)+1)
	for slug, label := range categories {
		rows = append(rows, types.BaitCategory{Slug: slug, Label: label})
	}
	rows = append(rows, types.BaitCategory{Slug: taxonomy.FallbackCategory, Label: "Unclassified"})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Slug < rows[j].Slug })

	err := transaction.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("seed bait categories: %w", err)
	}
	return nil
}
