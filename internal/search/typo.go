package search

import (
	"strings"
	"sync"
	"unicode"
)

// Dictionary holds the vocabulary used for typo correction and for
// spotting location names inside free-text queries. Terms come from the
// known-location table, station names and the property-type vocabulary,
// and it is rebuilt when the location tables change.
type Dictionary struct {
	mu    sync.RWMutex
	words map[string]struct{}
	// multi-word location names, longest first, for phrase scanning
	phrases []string
}

func NewDictionary() *Dictionary {
	return &Dictionary{words: map[string]struct{}{}}
}

// Load replaces the dictionary contents. Multi-word terms are kept both
// as phrases and as individual word entries.
func (d *Dictionary) Load(terms []string) {
	words := make(map[string]struct{})
	var phrases []string
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if strings.Contains(t, " ") {
			phrases = append(phrases, t)
		}
		for _, w := range strings.Fields(t) {
			words[w] = struct{}{}
		}
	}
	// longest phrase first so "mutiara damansara" wins over "damansara"
	for i := 1; i < len(phrases); i++ {
		for j := i; j > 0 && len(phrases[j]) > len(phrases[j-1]); j-- {
			phrases[j], phrases[j-1] = phrases[j-1], phrases[j]
		}
	}

	d.mu.Lock()
	d.words = words
	d.phrases = phrases
	d.mu.Unlock()
}

// Contains reports whether word is a known dictionary term.
func (d *Dictionary) Contains(word string) bool {
	d.mu.RLock()
	_, ok := d.words[strings.ToLower(word)]
	d.mu.RUnlock()
	return ok
}

// Phrases returns the multi-word location names, longest first.
func (d *Dictionary) Phrases() []string {
	d.mu.RLock()
	out := make([]string, len(d.phrases))
	copy(out, d.phrases)
	d.mu.RUnlock()
	return out
}

// Size returns the number of single-word entries.
func (d *Dictionary) Size() int {
	d.mu.RLock()
	n := len(d.words)
	d.mu.RUnlock()
	return n
}

// CorrectWord returns the closest dictionary word within the edit
// distance budget, or the input unchanged. Words shorter than 4 runes
// or containing digits are never corrected.
func (d *Dictionary) CorrectWord(word string) string {
	lower := strings.ToLower(word)
	if len([]rune(lower)) < 4 || containsDigit(lower) {
		return word
	}
	if d.Contains(lower) {
		return word
	}

	maxDist := 1
	if len([]rune(lower)) >= 6 {
		maxDist = 2
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	best := ""
	bestDist := maxDist + 1
	for w := range d.words {
		// cheap length filter before the full distance
		if diff := len(w) - len(lower); diff > bestDist-1 || -diff > bestDist-1 {
			continue
		}
		dist := levenshtein(lower, w)
		if dist < bestDist {
			best, bestDist = w, dist
		}
	}
	if best == "" {
		return word
	}
	return best
}

// CorrectQuery corrects each token of the query independently,
// preserving original spacing-insensitive token order.
func (d *Dictionary) CorrectQuery(query string) string {
	fields := strings.Fields(query)
	changed := false
	for i, f := range fields {
		c := d.CorrectWord(f)
		if c != f {
			fields[i] = c
			changed = true
		}
	}
	if !changed {
		return query
	}
	return strings.Join(fields, " ")
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
