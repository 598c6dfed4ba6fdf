package normalization

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Texas RIG", want: "texas rig"},
		{name: "collapses_whitespace", input: "drop \t\n  shot", want: "drop shot"},
		{name: "trims_ends", input: "  senko  ", want: "senko"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace_only", input: " \n\t ", want: ""},
		{name: "already_normal", input: "swim jig", want: "swim jig"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeText(tc.input)
			if got != tc.want {
				t.Fatalf("NormalizeText(%q)=%q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
