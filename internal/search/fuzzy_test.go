package search

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"kepong", "kepng", 1},
		{"klcc", "klcc", 0},
		{"damansara", "dammansara", 1},
	}

	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio("klcc", "klcc"); got != 100 {
		t.Errorf("identical strings: got %d, want 100", got)
	}
	if got := Ratio("KLCC", "klcc"); got != 100 {
		t.Errorf("case difference: got %d, want 100", got)
	}
	if got := Ratio("abcd", "wxyz"); got > 20 {
		t.Errorf("unrelated strings should score low, got %d", got)
	}
}

func TestPartialRatio(t *testing.T) {
	// substring always scores 100
	if got := PartialRatio("klcc", "luxury condo near klcc tower"); got != 100 {
		t.Errorf("substring: got %d, want 100", got)
	}
	if got := PartialRatio("luxury condo near klcc tower", "klcc"); got != 100 {
		t.Errorf("substring (swapped): got %d, want 100", got)
	}
	if got := PartialRatio("", "anything"); got != 0 {
		t.Errorf("empty query: got %d, want 0", got)
	}

	near := PartialRatio("kepng", "kepong heights residence")
	if near < 60 {
		t.Errorf("near-match should score well, got %d", near)
	}
}

func TestTokenSortRatio(t *testing.T) {
	if got := TokenSortRatio("kiara mont", "mont kiara"); got != 100 {
		t.Errorf("reordered tokens: got %d, want 100", got)
	}
}

func TestBestScoreOrdering(t *testing.T) {
	query := "mont kiara condo"

	relevant := BestScore(query, "Mont Kiara Aman Condominium")
	unrelated := BestScore(query, "Kepong Industrial Lot")
	if relevant <= unrelated {
		t.Errorf("relevant title (%d) should outscore unrelated (%d)", relevant, unrelated)
	}
}
