package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"airea-platform/internal/cache"
)

type fakeAbbrevStore struct {
	rows  map[string]string
	saved map[string]string
}

func newFakeAbbrevStore() *fakeAbbrevStore {
	return &fakeAbbrevStore{rows: map[string]string{}, saved: map[string]string{}}
}

func (s *fakeAbbrevStore) LookupAbbreviation(short string) (string, error) {
	return s.rows[short], nil
}

func (s *fakeAbbrevStore) SaveAbbreviation(short, expansion, source string) error {
	s.saved[short] = expansion
	s.rows[short] = expansion
	return nil
}

func TestExpandSeed(t *testing.T) {
	e := NewExpander(newFakeAbbrevStore(), nil, nil)

	exp, source := e.Expand(context.Background(), "BU")
	if exp != "bandar utama" || source != "seed" {
		t.Errorf("Expand(BU) = %q/%q, want bandar utama/seed", exp, source)
	}

	exp, source = e.Expand(context.Background(), "ttdi")
	if exp != "taman tun dr ismail" || source != "seed" {
		t.Errorf("Expand(ttdi) = %q/%q", exp, source)
	}
}

func TestExpandFromStore(t *testing.T) {
	store := newFakeAbbrevStore()
	store.rows["ss2"] = "ss2 petaling jaya"
	c := cache.New(time.Minute)
	e := NewExpander(store, nil, c)

	exp, source := e.Expand(context.Background(), "ss2")
	if exp != "ss2 petaling jaya" || source != "db" {
		t.Errorf("first lookup = %q/%q, want db hit", exp, source)
	}

	// second lookup is served from cache
	exp, source = e.Expand(context.Background(), "ss2")
	if exp != "ss2 petaling jaya" || source != "cache" {
		t.Errorf("second lookup = %q/%q, want cache hit", exp, source)
	}
}

func TestExpandViaAI(t *testing.T) {
	store := newFakeAbbrevStore()
	completer := &staticCompleter{reply: "Bukit Jelutong\n"}
	e := NewExpander(store, completer, nil)

	exp, source := e.Expand(context.Background(), "bj")
	if exp != "bukit jelutong" || source != "ai" {
		t.Errorf("Expand(bj) = %q/%q, want bukit jelutong/ai", exp, source)
	}
	if store.saved["bj"] != "bukit jelutong" {
		t.Errorf("AI expansion should be persisted, saved=%v", store.saved)
	}
}

func TestExpandAIUnknown(t *testing.T) {
	e := NewExpander(newFakeAbbrevStore(), &staticCompleter{reply: "UNKNOWN"}, nil)

	exp, _ := e.Expand(context.Background(), "qx")
	if exp != "" {
		t.Errorf("UNKNOWN reply must not expand, got %q", exp)
	}
}

func TestExpandAIError(t *testing.T) {
	e := NewExpander(newFakeAbbrevStore(), &staticCompleter{err: errors.New("timeout")}, nil)

	exp, _ := e.Expand(context.Background(), "qx")
	if exp != "" {
		t.Errorf("completion error must not expand, got %q", exp)
	}
}

func TestExpandQuery(t *testing.T) {
	dict := testDict()
	e := NewExpander(newFakeAbbrevStore(), nil, nil)

	got := e.ExpandQuery(context.Background(), "condo in bu under 600k", dict)
	if got != "condo in bandar utama under 600k" {
		t.Errorf("ExpandQuery got %q", got)
	}

	// dictionary words and stopwords are never expanded
	q := "condo near klcc for rent"
	if got := e.ExpandQuery(context.Background(), q, dict); got != q {
		t.Errorf("ExpandQuery(%q) = %q, want unchanged", q, got)
	}
}
