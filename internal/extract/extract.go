// Package extract turns raw transcript text into scored bait mentions.
// Extract is a pure function: same text and registry always produce the same
// ordered hits, so callers can run it concurrently and replay it freely.
package extract

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rayburnranger/backend/internal/normalization"
	"github.com/rayburnranger/backend/internal/taxonomy"
)

// Hit is one scored, evidenced bait mention. Keyword keeps the alias as
// declared in the registry; Excerpt is a window of normalized transcript text
// around the first occurrence.
type Hit struct {
	Bait       string `json:"bait"`
	Keyword    string `json:"keyword"`
	Confidence int    `json:"confidence"`
	Excerpt    string `json:"excerpt"`
}

const (
	baseConfidence = 65
	maxConfidence  = 95

	// longAliasLen is the normalized length at which an alias counts as
	// specific enough for a bonus.
	longAliasLen = 10

	// ExcerptWindow is how many bytes of context each side of a match goes
	// into the evidence excerpt.
	ExcerptWindow = 60
)

// Extract scans the text for every alias in the registry and returns at most
// one hit per (bait, normalized alias) pair, sorted by descending confidence
// and then ascending bait slug. Occurrences are counted non-overlapping.
func Extract(fullText string, reg *taxonomy.Registry) []Hit {
	text := normalization.NormalizeText(fullText)
	pairs := reg.AliasPairs()

	// Total occurrence count per distinct normalized alias. Aliases shared
	// between baits count once here and score the same everywhere.
	counts := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if _, done := counts[p.Normalized]; done {
			continue
		}
		counts[p.Normalized] = strings.Count(text, p.Normalized)
	}

	hits := make([]Hit, 0)
	type seenKey struct{ slug, alias string }
	seen := make(map[seenKey]struct{}, len(pairs))

	for _, p := range pairs {
		pos := strings.Index(text, p.Normalized)
		if pos < 0 {
			continue
		}
		key := seenKey{p.Slug, p.Normalized}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		hits = append(hits, Hit{
			Bait:       p.Slug,
			Keyword:    p.Alias,
			Confidence: score(p.Normalized, counts[p.Normalized]),
			Excerpt:    excerpt(text, pos),
		})
	}

	// Stable sort keeps equal (confidence, bait) hits in registry alias
	// order, which makes top-N reporting reproducible.
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Confidence != hits[j].Confidence {
			return hits[i].Confidence > hits[j].Confidence
		}
		return hits[i].Bait < hits[j].Bait
	})
	return hits
}

func score(normalizedAlias string, count int) int {
	conf := baseConfidence
	if len(normalizedAlias) >= longAliasLen {
		conf += 10
	}
	if count >= 2 {
		conf += 10
	}
	if count >= 4 {
		conf += 5
	}
	if conf > maxConfidence {
		conf = maxConfidence
	}
	return conf
}

// excerpt clips a window around pos to the text bounds, nudging the cut
// points forward off any split UTF-8 sequence, and trims the result.
func excerpt(text string, pos int) string {
	start := pos - ExcerptWindow
	if start < 0 {
		start = 0
	}
	end := pos + ExcerptWindow
	if end > len(text) {
		end = len(text)
	}
	for start < len(text) && !utf8.RuneStart(text[start]) {
		start++
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return strings.TrimSpace(text[start:end])
}
