// Command extract scans a transcript file for bait mentions and writes a JSON
// report. Persisting the hits to the store is best effort: a DB failure is
// reported but never costs you the report.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rayburnranger/backend/internal/db"
	"github.com/rayburnranger/backend/internal/extract"
	"github.com/rayburnranger/backend/internal/logger"
	"github.com/rayburnranger/backend/internal/repos"
	"github.com/rayburnranger/backend/internal/services"
	"github.com/rayburnranger/backend/internal/taxonomy"
	"github.com/rayburnranger/backend/internal/utils"
)

type report struct {
	Source       string        `json:"source"`
	VideoID      string        `json:"video_id"`
	CreatedAtUTC string        `json:"created_at_utc"`
	BaitHits     []extract.Hit `json:"bait_hits"`
	Counts       reportCounts  `json:"counts"`
}

type reportCounts struct {
	BaitHits     int `json:"bait_hits"`
	InsertedToDB int `json:"inserted_to_db"`
}

func main() {
	var (
		textPath = flag.String("text", "", "path to a transcript .txt file")
		videoID  = flag.String("video-id", "", "video_id to associate hits with (default: transcript file stem)")
		outDir   = flag.String("outdir", "data/out", "output directory for the JSON report")
		noDB     = flag.Bool("no-db", false, "skip writing hits to the store (report is still written)")
	)
	flag.Parse()

	if *textPath == "" {
		fmt.Println("missing -text: point it at a transcript .txt file")
		os.Exit(2)
	}
	if _, err := os.Stat(*textPath); err != nil {
		fmt.Printf("transcript file not found: %s\n", *textPath)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*textPath)
	if err != nil {
		fmt.Printf("read transcript: %v\n", err)
		os.Exit(1)
	}
	transcript := string(raw)
	stem := strings.TrimSuffix(filepath.Base(*textPath), filepath.Ext(*textPath))
	sourceLabel := "text:" + filepath.Base(*textPath)

	registry, err := taxonomy.Load()
	if err != nil {
		fmt.Printf("load bait taxonomy: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("1) Loaded transcript (%s), %d bytes\n", sourceLabel, len(transcript))
	fmt.Println("2) Extracting baits from transcript text...")
	hits := extract.Extract(transcript, registry)

	id := *videoID
	if id == "" {
		id = stem
	}

	inserted := 0
	if !*noDB && len(hits) > 0 {
		n, err := ingestHits(id, hits, registry)
		if err != nil {
			fmt.Printf("DB insert failed (continuing, JSON still written): %v\n", err)
		} else {
			inserted = n
			fmt.Printf("Inserted %d bait hits into the store for video_id=%s\n", inserted, id)
		}
	} else if !*noDB {
		fmt.Println("No bait hits found; nothing inserted into the store.")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Printf("create output dir: %v\n", err)
		os.Exit(1)
	}
	now := time.Now().UTC()
	outPath := filepath.Join(*outDir, fmt.Sprintf("%s_%s.json", stem, now.Format("20060102_150405")))

	payload := report{
		Source:       sourceLabel,
		VideoID:      id,
		CreatedAtUTC: now.Format(time.RFC3339),
		BaitHits:     hits,
		Counts: reportCounts{
			BaitHits:     len(hits),
			InsertedToDB: inserted,
		},
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Printf("encode report: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		fmt.Printf("write report: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done. Wrote: %s\n", outPath)
	fmt.Printf("Found %d bait hits.\n", len(hits))
	if len(hits) > 0 {
		fmt.Println("Top hits:")
		top := hits
		if len(top) > 10 {
			top = top[:10]
		}
		for _, h := range top {
			fmt.Printf(" - %s (%s) conf=%d\n", h.Bait, h.Keyword, h.Confidence)
		}
	}
}

// ingestHits routes the extractor output through the same ingestion bridge
// the HTTP API uses, so the video row exists before its hits do.
func ingestHits(videoID string, hits []extract.Hit, registry *taxonomy.Registry) (int, error) {
	log, err := logger.New("development")
	if err != nil {
		return 0, err
	}
	defer log.Sync()

	dbPath := utils.GetEnv("RAYBURN_DB_PATH", "data/rayburn.db", log)
	sqliteService, err := db.NewSQLiteService(dbPath, log)
	if err != nil {
		return 0, err
	}
	if err := sqliteService.AutoMigrateAll(); err != nil {
		return 0, err
	}
	theDB := sqliteService.DB()

	baitService := services.NewBaitService(
		theDB,
		log,
		registry,
		repos.NewVideoRepo(theDB, log),
		repos.NewBaitRepo(theDB, log),
		repos.NewBaitHitRepo(theDB, log),
	)

	raw := make([]services.RawHit, 0, len(hits))
	for _, h := range hits {
		confidence := h.Confidence
		category := ""
		if entry, ok := registry.Entry(h.Bait); ok {
			category = entry.Category
		}
		raw = append(raw, services.RawHit{
			BaitName:   h.Bait,
			BaitText:   h.Keyword,
			Snippet:    h.Excerpt,
			Confidence: &confidence,
			Category:   category,
		})
	}

	return baitService.Ingest(context.Background(), services.VideoInput{
		VideoID: videoID,
		Source:  "transcript",
	}, raw)
}
