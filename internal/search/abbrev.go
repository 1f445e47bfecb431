package search

import (
	"context"
	"log"
	"strings"

	"airea-platform/internal/ai"
	"airea-platform/internal/cache"
)

// AbbrevStore persists learned abbreviation expansions.
type AbbrevStore interface {
	LookupAbbreviation(short string) (string, error)
	SaveAbbreviation(short, expansion, source string) error
}

// seedAbbreviations covers the shorthand Malaysian property seekers
// actually type. DB-learned and AI-learned entries layer on top.
var seedAbbreviations = map[string]string{
	"bu":   "bandar utama",
	"pj":   "petaling jaya",
	"kl":   "kuala lumpur",
	"ttdi": "taman tun dr ismail",
	"mk":   "mont kiara",
	"sa":   "shah alam",
	"kj":   "kelana jaya",
	"usj":  "usj subang jaya",
	"dj":   "damansara jaya",
	"sj":   "subang jaya",
	"bb":   "bukit bintang",
	"opkl": "old klang road",
}

var abbrevStopwords = map[string]struct{}{
	"in": {}, "at": {}, "rm": {}, "for": {}, "to": {}, "the": {},
	"and": {}, "or": {}, "buy": {}, "new": {}, "under": {}, "near": {},
	"with": {}, "from": {}, "over": {}, "rent": {}, "sale": {},
	"sewa": {}, "beli": {}, "jual": {}, "dekat": {},
}

// Expander resolves location abbreviations through a layered chain:
// built-in seeds, in-memory cache, the learned DB table, and finally an
// AI completion whose answer is persisted for next time.
type Expander struct {
	store     AbbrevStore
	completer ai.Completer
	cache     *cache.Cache
}

func NewExpander(store AbbrevStore, completer ai.Completer, c *cache.Cache) *Expander {
	return &Expander{store: store, completer: completer, cache: c}
}

// Expand resolves a single token. Returns the expansion and its source
// ("seed", "cache", "db", "ai"), or "" when nothing resolves.
func (e *Expander) Expand(ctx context.Context, token string) (string, string) {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return "", ""
	}

	if exp, ok := seedAbbreviations[token]; ok {
		return exp, "seed"
	}

	cacheKey := "abbrev:" + token
	if e.cache != nil {
		if exp, ok := e.cache.GetString(cacheKey); ok {
			return exp, "cache"
		}
	}

	if e.store != nil {
		exp, err := e.store.LookupAbbreviation(token)
		if err != nil {
			log.Printf("abbrev lookup failed short=%s err=%v", token, err)
		} else if exp != "" {
			if e.cache != nil {
				e.cache.Set(cacheKey, exp)
			}
			return exp, "db"
		}
	}

	if e.completer != nil {
		exp := e.expandAI(ctx, token)
		if exp != "" {
			if e.cache != nil {
				e.cache.Set(cacheKey, exp)
			}
			if e.store != nil {
				if err := e.store.SaveAbbreviation(token, exp, "ai"); err != nil {
					log.Printf("abbrev save failed short=%s err=%v", token, err)
				}
			}
			return exp, "ai"
		}
	}

	return "", ""
}

const abbrevSystemPrompt = `You expand abbreviations of Malaysian place names used in property searches.
Reply with only the full place name in lowercase, nothing else.
If the input is not a Malaysian location abbreviation you recognise, reply with exactly UNKNOWN.`

func (e *Expander) expandAI(ctx context.Context, token string) string {
	out, err := e.completer.Complete(ctx, abbrevSystemPrompt, token)
	if err != nil {
		log.Printf("abbrev ai expansion failed short=%s err=%v", token, err)
		return ""
	}
	out = strings.ToLower(strings.TrimSpace(out))
	if out == "" || out == "unknown" || len(out) > 60 || strings.ContainsAny(out, "{}\n") {
		return ""
	}
	return out
}

// ExpandQuery rewrites abbreviated tokens in the query. Tokens already
// in the dictionary, stopwords, and anything with digits are left alone.
func (e *Expander) ExpandQuery(ctx context.Context, query string, dict *Dictionary) string {
	fields := strings.Fields(query)
	changed := false
	for i, f := range fields {
		lower := strings.ToLower(f)
		if len(lower) < 2 || len(lower) > 4 || containsDigit(lower) {
			continue
		}
		if _, stop := abbrevStopwords[lower]; stop {
			continue
		}
		if dict != nil && dict.Contains(lower) {
			continue
		}
		if exp, _ := e.Expand(ctx, lower); exp != "" {
			fields[i] = exp
			changed = true
		}
	}
	if !changed {
		return query
	}
	return strings.Join(fields, " ")
}
