package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rayburnranger/backend/internal/taxonomy"
)

func testRegistry() *taxonomy.Registry {
	return taxonomy.New(map[string]taxonomy.Entry{
		"texas_rig":    {Canonical: "Texas Rig", Category: "rigs", Aliases: []string{"texas rig"}},
		"soft_plastic": {Canonical: "Soft Plastic", Category: "soft_plastics", Aliases: []string{"senko", "worm"}},
	}, map[string]string{"rigs": "Rigs", "soft_plastics": "Soft Plastics"})
}

func TestExtractWorkedExample(t *testing.T) {
	text := "I threw a texas rig and then a Texas Rig again near the dock, also a senko worm"
	hits := Extract(text, testRegistry())

	want := []struct {
		bait       string
		keyword    string
		confidence int
	}{
		// "texas rig" occurs twice: 65 + 10 (repetition). Length 9 gets
		// no specificity bonus.
		{bait: "texas_rig", keyword: "texas rig", confidence: 75},
		{bait: "soft_plastic", keyword: "senko", confidence: 65},
		{bait: "soft_plastic", keyword: "worm", confidence: 65},
	}

	if len(hits) != len(want) {
		t.Fatalf("expected %d hits, got %d: %+v", len(want), len(hits), hits)
	}
	for i, w := range want {
		h := hits[i]
		if h.Bait != w.bait || h.Keyword != w.keyword || h.Confidence != w.confidence {
			t.Fatalf("hit %d = %+v, want %+v", i, h, w)
		}
		if h.Excerpt == "" {
			t.Fatalf("hit %d has empty excerpt", i)
		}
	}
}

func TestExtractDeterministic(t *testing.T) {
	text := "senko worm senko texas rig worm worm texas rig senko"
	reg := testRegistry()

	first := Extract(text, reg)
	for i := 0; i < 5; i++ {
		again := Extract(text, reg)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestExtractDedupesRepeatedAlias(t *testing.T) {
	reg := taxonomy.New(map[string]taxonomy.Entry{
		"jig": {Canonical: "Jig", Category: "jigs", Aliases: []string{"jig"}},
	}, map[string]string{"jigs": "Jigs"})
	text := strings.TrimSpace(strings.Repeat("jig ", 100))

	hits := Extract(text, reg)
	if len(hits) != 1 {
		t.Fatalf("expected a single hit for 100 occurrences, got %d", len(hits))
	}
	// 65 base, +10 for count>=2, +5 for count>=4; too short for the
	// length bonus.
	if hits[0].Confidence != 80 {
		t.Fatalf("confidence = %d, want 80", hits[0].Confidence)
	}
}

func TestExtractLongAliasBonus(t *testing.T) {
	reg := taxonomy.New(map[string]taxonomy.Entry{
		"topwater": {Canonical: "Topwater", Category: "topwater", Aliases: []string{"whopper plopper"}},
	}, map[string]string{"topwater": "Topwater"})

	cases := []struct {
		name string
		text string
		want int
	}{
		{name: "single_occurrence", text: "tied on a whopper plopper today", want: 75},
		{name: "double_occurrence", text: "whopper plopper then another whopper plopper", want: 85},
		{
			name: "four_occurrences",
			text: strings.TrimSpace(strings.Repeat("whopper plopper ", 4)),
			want: 90,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hits := Extract(tc.text, reg)
			if len(hits) != 1 {
				t.Fatalf("expected 1 hit, got %d", len(hits))
			}
			if hits[0].Confidence != tc.want {
				t.Fatalf("confidence = %d, want %d", hits[0].Confidence, tc.want)
			}
		})
	}
}

func TestExtractConfidenceBounds(t *testing.T) {
	reg, err := taxonomy.Load()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	text := strings.TrimSpace(strings.Repeat(
		"whopper plopper lipless crankbait texas rig senko worm jig frog spook ", 6))

	hits := Extract(text, reg)
	if len(hits) == 0 {
		t.Fatal("expected hits from dense transcript")
	}
	for _, h := range hits {
		if h.Confidence < 0 || h.Confidence > 95 {
			t.Fatalf("confidence %d out of [0,95] for %+v", h.Confidence, h)
		}
	}
}

func TestExtractOrderingInvariant(t *testing.T) {
	reg, err := taxonomy.Load()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	text := "crankbait jig senko worm texas rig texas rig drop shot dropshot ned rig frog spook"

	hits := Extract(text, reg)
	for i := 1; i < len(hits); i++ {
		prev, cur := hits[i-1], hits[i]
		if prev.Confidence < cur.Confidence {
			t.Fatalf("hits not sorted by confidence desc at %d: %+v before %+v", i, prev, cur)
		}
		if prev.Confidence == cur.Confidence && prev.Bait > cur.Bait {
			t.Fatalf("tie not broken by bait asc at %d: %+v before %+v", i, prev, cur)
		}
	}
}

func TestExtractEmptyText(t *testing.T) {
	if hits := Extract("", testRegistry()); len(hits) != 0 {
		t.Fatalf("expected no hits for empty text, got %+v", hits)
	}
	if hits := Extract("   \n\t  ", testRegistry()); len(hits) != 0 {
		t.Fatalf("expected no hits for whitespace text, got %+v", hits)
	}
}

func TestExcerptWindow(t *testing.T) {
	pad := strings.Repeat("x", 200)
	text := pad + " senko " + pad
	hits := Extract(text, testRegistry())
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	excerpt := hits[0].Excerpt
	if !strings.Contains(excerpt, "senko") {
		t.Fatalf("excerpt does not contain the match: %q", excerpt)
	}
	// Window is 60 bytes each side of the match position.
	if len(excerpt) > 2*ExcerptWindow+1 {
		t.Fatalf("excerpt too long (%d bytes): %q", len(excerpt), excerpt)
	}
	if excerpt != strings.TrimSpace(excerpt) {
		t.Fatalf("excerpt not trimmed: %q", excerpt)
	}
}

func TestExcerptClippedAtTextStart(t *testing.T) {
	hits := Extract("senko right at the start of a long enough transcript text", testRegistry())
	if len(hits) == 0 {
		t.Fatal("expected a hit")
	}
	if !strings.HasPrefix(hits[0].Excerpt, "senko") {
		t.Fatalf("excerpt should start at text start: %q", hits[0].Excerpt)
	}
}
