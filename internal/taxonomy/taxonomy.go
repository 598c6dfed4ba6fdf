// Package taxonomy holds the static bait vocabulary: canonical bait slugs,
// their display labels and categories, and the alias phrases the extractor
// matches against transcript text. The registry is built once at startup and
// never mutated afterwards; everything that needs it takes it as a parameter.
package taxonomy

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rayburnranger/backend/internal/normalization"
)

//go:embed baits.yaml
var baitsYAML []byte

// FallbackCategory is what an unknown category slug coerces to. Coercion is a
// documented policy (NormalizeCategory), not silent data loss.
const FallbackCategory = "unclassified"

type Entry struct {
	Canonical string   `yaml:"canonical"`
	Category  string   `yaml:"category"`
	Aliases   []string `yaml:"aliases"`
}

// AliasPair is one (bait, phrase) matching unit. Normalized is the phrase
// after NormalizeText; Alias keeps the raw spelling for reports and bait_text.
type AliasPair struct {
	Slug       string
	Alias      string
	Normalized string
}

type Registry struct {
	entries    map[string]Entry
	categories map[string]string
	slugs      []string
	pairs      []AliasPair
}

type registryFile struct {
	Categories map[string]string `yaml:"categories"`
	Baits      map[string]Entry  `yaml:"baits"`
}

// Load parses the embedded vocabulary. Called once from main.
func Load() (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(baitsYAML, &file); err != nil {
		return nil, fmt.Errorf("parse baits.yaml: %w", err)
	}
	return New(file.Baits, file.Categories), nil
}

// New builds a registry from explicit tables. Tests use it to supply small
// vocabularies instead of the embedded one.
func New(baits map[string]Entry, categories map[string]string) *Registry {
	r := &Registry{
		entries:    make(map[string]Entry, len(baits)),
		categories: make(map[string]string, len(categories)),
	}
	for slug, label := range categories {
		r.categories[slug] = label
	}
	for slug, entry := range baits {
		r.entries[slug] = entry
		r.slugs = append(r.slugs, slug)
	}
	sort.Strings(r.slugs)

	// Precompute matching pairs in a deterministic order: slugs sorted,
	// aliases in declared order. Aliases that normalize to nothing are
	// dropped here rather than erroring.
	for _, slug := range r.slugs {
		for _, alias := range r.entries[slug].Aliases {
			n := normalization.NormalizeText(alias)
			if n == "" {
				continue
			}
			r.pairs = append(r.pairs, AliasPair{Slug: slug, Alias: alias, Normalized: n})
		}
	}
	return r
}

func (r *Registry) Entry(slug string) (Entry, bool) {
	e, ok := r.entries[slug]
	return e, ok
}

// Slugs returns the canonical bait slugs in sorted order.
func (r *Registry) Slugs() []string {
	out := make([]string, len(r.slugs))
	copy(out, r.slugs)
	return out
}

// AliasPairs returns every usable (bait, alias) pair in registry order.
func (r *Registry) AliasPairs() []AliasPair {
	out := make([]AliasPair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// Categories returns slug -> label for every known category.
func (r *Registry) Categories() map[string]string {
	out := make(map[string]string, len(r.categories))
	for slug, label := range r.categories {
		out[slug] = label
	}
	return out
}

// NormalizeCategory applies the category policy: empty stays empty (stored as
// null), a known slug passes through, anything else becomes FallbackCategory.
func (r *Registry) NormalizeCategory(slug string) string {
	n := normalization.NormalizeText(slug)
	if n == "" {
		return ""
	}
	if _, ok := r.categories[n]; ok {
		return n
	}
	return FallbackCategory
}
