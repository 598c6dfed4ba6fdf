package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/rayburnranger/backend/internal/apperr"
	"github.com/rayburnranger/backend/internal/db"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/repos"
	"github.com/rayburnranger/backend/internal/taxonomy"
)

func newTestBaitService(t *testing.T) (BaitService, *gorm.DB) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	svc, err := db.NewSQLiteService(filepath.Join(t.TempDir(), "test.db"), log)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	reg, err := taxonomy.Load()
	if err != nil {
		t.Fatalf("load taxonomy: %v", err)
	}
	gdb := svc.DB()
	service := NewBaitService(
		gdb, log, reg,
		repos.NewVideoRepo(gdb, log),
		repos.NewBaitRepo(gdb, log),
		repos.NewBaitHitRepo(gdb, log),
	)
	return service, gdb
}

func TestIngestRequiresVideoID(t *testing.T) {
	service, _ := newTestBaitService(t)

	_, err := service.Ingest(context.Background(), VideoInput{VideoID: "  "}, nil)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestIngestEmptyHitsStillUpsertsVideo(t *testing.T) {
	service, _ := newTestBaitService(t)
	ctx := context.Background()

	inserted, err := service.Ingest(ctx, VideoInput{VideoID: "vid1", Title: "spring jig bite"}, nil)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected 0 inserted, got %d", inserted)
	}
	rows, err := service.HitsForVideo(ctx, "vid1")
	if err != nil {
		t.Fatalf("HitsForVideo: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no hits, got %d", len(rows))
	}
}

func TestIngestSkipsNamelessHits(t *testing.T) {
	service, _ := newTestBaitService(t)

	hits := []RawHit{
		{BaitName: "senko", BaitText: "senko"},
		{BaitName: "   "},
		{BaitName: "jig", BaitText: "jig"},
	}
	inserted, err := service.Ingest(context.Background(), VideoInput{VideoID: "vid1"}, hits)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted (nameless skipped), got %d", inserted)
	}
}

func TestIngestDefaultsConfidence(t *testing.T) {
	service, _ := newTestBaitService(t)
	ctx := context.Background()

	scored := 88
	hits := []RawHit{
		{BaitName: "senko"},
		{BaitName: "jig", Confidence: &scored},
	}
	if _, err := service.Ingest(ctx, VideoInput{VideoID: "vid1"}, hits); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	rows, err := service.HitsForVideo(ctx, "vid1")
	if err != nil {
		t.Fatalf("HitsForVideo: %v", err)
	}
	byName := map[string]int{}
	for _, row := range rows {
		byName[row.BaitName] = row.Confidence
	}
	if byName["senko"] != DefaultHitConfidence {
		t.Fatalf("unscored hit: got confidence %d, want %d", byName["senko"], DefaultHitConfidence)
	}
	if byName["jig"] != 88 {
		t.Fatalf("scored hit: got confidence %d, want 88", byName["jig"])
	}
}

func TestIngestIsAppendOnly(t *testing.T) {
	service, _ := newTestBaitService(t)
	ctx := context.Background()

	hits := []RawHit{{BaitName: "senko"}, {BaitName: "jig"}}
	for i := 0; i < 2; i++ {
		if _, err := service.Ingest(ctx, VideoInput{VideoID: "vid1", Title: "take two"}, hits); err != nil {
			t.Fatalf("Ingest %d: %v", i, err)
		}
	}

	rows, err := service.HitsForVideo(ctx, "vid1")
	if err != nil {
		t.Fatalf("HitsForVideo: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("hits append on re-ingest: expected 4 rows, got %d", len(rows))
	}

	summary, err := service.Summary(ctx, 25)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	for _, row := range summary {
		if row.Videos != 1 {
			t.Fatalf("re-ingest must not duplicate the video: %+v", row)
		}
	}
}

func TestIngestNormalizesCategory(t *testing.T) {
	service, gdb := newTestBaitService(t)
	ctx := context.Background()

	hits := []RawHit{
		{BaitName: "mystery lure", Category: "made-up-category"},
		{BaitName: "senko", Category: "Soft_Plastics"},
	}
	if _, err := service.Ingest(ctx, VideoInput{VideoID: "vid1"}, hits); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	baitRepo := repos.NewBaitRepo(gdb, mustLogger(t))
	mystery, err := baitRepo.GetByName(ctx, nil, "mystery lure")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if mystery.Category == nil || *mystery.Category != taxonomy.FallbackCategory {
		t.Fatalf("unknown category: got %v, want %q", mystery.Category, taxonomy.FallbackCategory)
	}
	senko, err := baitRepo.GetByName(ctx, nil, "senko")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if senko.Category == nil || *senko.Category != "soft_plastics" {
		t.Fatalf("category not normalized to slug: got %v", senko.Category)
	}
}

func mustLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}
