package search

import "testing"

func TestDictionaryLoad(t *testing.T) {
	d := NewDictionary()
	d.Load([]string{"KLCC", "Mont Kiara", "  kepong  ", ""})

	if !d.Contains("klcc") {
		t.Error("klcc should be in the dictionary")
	}
	if !d.Contains("mont") || !d.Contains("kiara") {
		t.Error("phrase words should be individually indexed")
	}
	if d.Contains("") {
		t.Error("empty term should not be indexed")
	}

	phrases := d.Phrases()
	if len(phrases) != 1 || phrases[0] != "mont kiara" {
		t.Errorf("Phrases got %v, want [mont kiara]", phrases)
	}
}

func TestPhrasesLongestFirst(t *testing.T) {
	d := NewDictionary()
	d.Load([]string{"damansara", "mutiara damansara", "bandar utama damansara heights", "mont kiara"})

	phrases := d.Phrases()
	for i := 1; i < len(phrases); i++ {
		if len(phrases[i]) > len(phrases[i-1]) {
			t.Errorf("phrases not sorted longest first: %v", phrases)
		}
	}
}

func TestCorrectWord(t *testing.T) {
	d := testDict()

	tests := []struct {
		in   string
		want string
	}{
		{"kepng", "kepong"},      // distance 1
		{"dammansara", "damansara"}, // distance 1, long word allows 2
		{"klcc", "klcc"},         // already correct
		{"klc", "klc"},           // too short to correct
		{"3br", "3br"},           // digits never corrected
		{"zzzzzz", "zzzzzz"},     // nothing close enough
	}

	for _, tt := range tests {
		if got := d.CorrectWord(tt.in); got != tt.want {
			t.Errorf("CorrectWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCorrectQuery(t *testing.T) {
	d := testDict()

	got := d.CorrectQuery("condo in kepng")
	if got != "condo in kepong" {
		t.Errorf("CorrectQuery got %q, want %q", got, "condo in kepong")
	}

	// unchanged queries come back verbatim
	q := "condo in kepong"
	if got := d.CorrectQuery(q); got != q {
		t.Errorf("CorrectQuery(%q) = %q, want unchanged", q, got)
	}
}
