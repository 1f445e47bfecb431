package search

import (
	"context"
	"encoding/json"
	"log"
	"regexp"
	"strconv"
	"strings"

	"airea-platform/internal/ai"
)

// Filters is the structured output of query understanding. Pointer
// fields distinguish "not mentioned" from zero values.
type Filters struct {
	PropertyTypes []string `json:"propertyType,omitempty"`
	ListingType   string   `json:"listingType,omitempty"`
	MinPrice      *float64 `json:"minPrice,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
	Bedrooms      *int     `json:"bedrooms,omitempty"`
	MinBedrooms   *int     `json:"minBedrooms,omitempty"`
	Location      string   `json:"location,omitempty"`

	// Proximity is set when the user asked for "near X" rather than
	// "in X"; it switches location filtering to radius search.
	Proximity bool `json:"-"`
}

// Empty reports whether no filter was extracted at all.
func (f Filters) Empty() bool {
	return len(f.PropertyTypes) == 0 && f.ListingType == "" &&
		f.MinPrice == nil && f.MaxPrice == nil &&
		f.Bedrooms == nil && f.MinBedrooms == nil && f.Location == ""
}

// typeSynonyms maps vernacular terms, Bahasa Malaysia and Chinese
// included, onto canonical property types.
var typeSynonyms = map[string]string{
	"condo":        "condominium",
	"condos":       "condominium",
	"condominium":  "condominium",
	"condominiums": "condominium",
	"kondo":        "condominium",
	"kondominium":  "condominium",
	"公寓楼":          "condominium",
	"apartment":    "apartment",
	"apartments":   "apartment",
	"apartmen":     "apartment",
	"flat":         "apartment",
	"flats":        "apartment",
	"公寓":           "apartment",
	"house":        "house",
	"houses":       "house",
	"rumah":        "house",
	"bungalow":     "house",
	"房屋":           "house",
	"房子":           "house",
	"terrace":      "townhouse",
	"terraced":     "townhouse",
	"townhouse":    "townhouse",
	"townhouses":   "townhouse",
	"landed":       "house",
	"office":       "office",
	"offices":      "office",
	"pejabat":      "office",
	"办公室":          "office",
	"shoplot":      "shop-office",
	"shoplots":     "shop-office",
	"shophouse":    "shop-office",
	"retail":       "retail-space",
	"kedai":        "retail-space",
	"shop":         "retail-space",
	"factory":      "industrial",
	"factories":    "industrial",
	"warehouse":    "industrial",
	"warehouses":   "industrial",
	"kilang":       "industrial",
	"gudang":       "industrial",
	"工厂":           "industrial",
	"仓库":           "industrial",
	"industrial":   "industrial",
	"land":         "land",
	"tanah":        "land",
	"studio":       "apartment",
	"studios":      "apartment",
}

var (
	rentSignals = []string{"for rent", "to rent", "rental", "rent", "renting", "disewa", "sewa", "untuk disewa", "出租", "租", "temporary", "temporarily", "short term"}
	saleSignals = []string{"for sale", "to buy", "buy", "buying", "purchase", "sale", "dijual", "jual", "untuk dijual", "出售", "买", "investment", "invest", "own stay"}
)

var (
	// RM 500,000 | rm500k | 600k | 1.2 million | 850000
	priceRe = regexp.MustCompile(`(?i)rm\s*([\d,]+(?:\.\d+)?)\s*(k|thousand|ribu|mil|million|juta|m)?|([\d,]+(?:\.\d+)?)\s*(k|thousand|ribu|mil|million|juta)\b`)

	// bare numbers only count as prices next to a bound word
	boundedPriceRe = regexp.MustCompile(`(?i)\b(under|below|max|maximum|bawah|less than|up to|within|不超过|以下|above|over|min|minimum|from|at least|more than|超过|以上)\s+(?:rm\s*)?([\d,]+(?:\.\d+)?)\s*(k|thousand|ribu|mil|million|juta|m)?`)

	maxBoundRe = regexp.MustCompile(`(?i)\b(under|below|max|maximum|bawah|less than|up to|within|不超过|以下)\b`)
	minBoundRe = regexp.MustCompile(`(?i)\b(above|over|min|minimum|at least|more than|starting|from|超过|以上)\b`)

	bedroomRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:\+\s*)?(?:bed\s?rooms?|beds?|br\b|bilik(?:\s+tidur)?|室|房间|房)`)
	minBedroomRe = regexp.MustCompile(`(?i)\b(?:at least|minimum|min|or more)\b`)
	studioRe     = regexp.MustCompile(`(?i)\bstudio\b`)

	locationRe = regexp.MustCompile(`(?i)\b(?:in|near|at|around|nearby|close to|dekat|berhampiran|di|附近|靠近)\s+([a-z][a-z0-9' ]{1,40})`)
	nearRe     = regexp.MustCompile(`(?i)\b(?:near|nearby|close to|dekat|berhampiran|walking distance|附近|靠近)\b`)
)

// locationStopTokens end a location phrase captured after "in"/"near".
var locationStopTokens = map[string]struct{}{
	"under": {}, "below": {}, "above": {}, "over": {}, "for": {},
	"with": {}, "rm": {}, "and": {}, "or": {}, "from": {}, "max": {},
	"min": {}, "up": {}, "less": {}, "more": {}, "around": {},
	"budget": {}, "price": {}, "priced": {},
}

// ParseHeuristic extracts filters from a natural-language query without
// touching the AI. The dictionary, when present, supplies known location
// phrases for direct spotting.
func ParseHeuristic(query string, dict *Dictionary) Filters {
	var f Filters
	lower := strings.ToLower(query)

	f.PropertyTypes = extractPropertyTypes(lower)
	f.ListingType = extractListingType(lower)
	extractBedrooms(lower, &f)
	extractPrices(lower, &f)
	f.Location = extractLocation(lower, dict)
	f.Proximity = nearRe.MatchString(lower)

	return f
}

func extractPropertyTypes(lower string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ".,!?")
		if canon, ok := typeSynonyms[tok]; ok {
			if _, dup := seen[canon]; !dup {
				seen[canon] = struct{}{}
				out = append(out, canon)
			}
		}
	}
	// CJK queries have no spaces, scan the synonyms directly
	for syn, canon := range typeSynonyms {
		if isASCII(syn) {
			continue
		}
		if strings.Contains(lower, syn) {
			if _, dup := seen[canon]; !dup {
				seen[canon] = struct{}{}
				out = append(out, canon)
			}
		}
	}
	return out
}

func extractListingType(lower string) string {
	for _, s := range rentSignals {
		if strings.Contains(lower, s) {
			return "rent"
		}
	}
	for _, s := range saleSignals {
		if strings.Contains(lower, s) {
			return "sale"
		}
	}
	return ""
}

func extractBedrooms(lower string, f *Filters) {
	if studioRe.MatchString(lower) {
		zero := 0
		f.Bedrooms = &zero
		return
	}
	m := bedroomRe.FindStringSubmatch(lower)
	if m == nil {
		return
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 || n > 20 {
		return
	}
	if minBedroomRe.MatchString(lower) || strings.Contains(lower, m[1]+"+") {
		f.MinBedrooms = &n
	} else {
		f.Bedrooms = &n
	}
}

func extractPrices(lower string, f *Filters) {
	// bounded form first: the bound word decides min vs max
	for _, m := range boundedPriceRe.FindAllStringSubmatch(lower, -1) {
		amount := parseAmount(m[2], m[3])
		if amount <= 0 {
			continue
		}
		if maxBoundRe.MatchString(m[1]) {
			if f.MaxPrice == nil || amount < *f.MaxPrice {
				v := amount
				f.MaxPrice = &v
			}
		} else {
			if f.MinPrice == nil || amount > *f.MinPrice {
				v := amount
				f.MinPrice = &v
			}
		}
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		return
	}

	// standalone RM amount or k/million suffix acts as a budget ceiling
	for _, m := range priceRe.FindAllStringSubmatch(lower, -1) {
		var amount float64
		if m[1] != "" {
			amount = parseAmount(m[1], m[2])
		} else {
			amount = parseAmount(m[3], m[4])
		}
		if amount <= 0 {
			continue
		}
		if f.MaxPrice == nil || amount > *f.MaxPrice {
			v := amount
			f.MaxPrice = &v
		}
	}
}

func parseAmount(num, suffix string) float64 {
	num = strings.ReplaceAll(num, ",", "")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(suffix) {
	case "k", "thousand", "ribu":
		v *= 1_000
	case "m", "mil", "million", "juta":
		v *= 1_000_000
	}
	return v
}

func extractLocation(lower string, dict *Dictionary) string {
	// known multi-word locations win outright
	if dict != nil {
		for _, phrase := range dict.Phrases() {
			if strings.Contains(lower, phrase) {
				return phrase
			}
		}
	}

	m := locationRe.FindStringSubmatch(lower)
	if m == nil {
		return ""
	}
	var kept []string
	for _, tok := range strings.Fields(m[1]) {
		tok = strings.Trim(tok, ".,!?")
		if _, stop := locationStopTokens[tok]; stop {
			break
		}
		if _, isType := typeSynonyms[tok]; isType {
			break
		}
		if containsDigit(tok) {
			break
		}
		kept = append(kept, tok)
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, " ")
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

const parseSystemPrompt = `You extract structured property-search filters from Malaysian real-estate queries.
Respond with a single JSON object, no prose, using only these keys when present:
propertyType (array of: apartment, condominium, house, townhouse, office, retail-space, shop-office, commercial, industrial, land),
listingType ("sale" or "rent"), minPrice (number, MYR), maxPrice (number, MYR),
bedrooms (number, 0 for studio), location (lowercase place name).
Omit keys you are not sure about.`

// ParseAI asks the model for filters and merges them over the heuristic
// result; heuristic values win on conflict since they are deterministic.
func ParseAI(ctx context.Context, completer ai.Completer, query string, base Filters) (Filters, bool) {
	out, err := completer.Complete(ctx, parseSystemPrompt, query)
	if err != nil {
		log.Printf("ai parse failed query=%q err=%v", query, err)
		return base, false
	}

	var parsed Filters
	if err := json.Unmarshal([]byte(extractJSON(out)), &parsed); err != nil {
		log.Printf("ai parse bad json query=%q err=%v", query, err)
		return base, false
	}

	merged := base
	if len(merged.PropertyTypes) == 0 {
		for _, t := range parsed.PropertyTypes {
			t = strings.ToLower(strings.TrimSpace(t))
			if canon, ok := typeSynonyms[t]; ok {
				t = canon
			}
			if validCanonicalType(t) {
				merged.PropertyTypes = append(merged.PropertyTypes, t)
			}
		}
	}
	if merged.ListingType == "" && (parsed.ListingType == "sale" || parsed.ListingType == "rent") {
		merged.ListingType = parsed.ListingType
	}
	if merged.MinPrice == nil && parsed.MinPrice != nil && *parsed.MinPrice > 0 {
		merged.MinPrice = parsed.MinPrice
	}
	if merged.MaxPrice == nil && parsed.MaxPrice != nil && *parsed.MaxPrice > 0 {
		merged.MaxPrice = parsed.MaxPrice
	}
	if merged.Bedrooms == nil && merged.MinBedrooms == nil && parsed.Bedrooms != nil && *parsed.Bedrooms >= 0 {
		merged.Bedrooms = parsed.Bedrooms
	}
	if merged.Location == "" && parsed.Location != "" {
		merged.Location = strings.ToLower(strings.TrimSpace(parsed.Location))
	}
	return merged, true
}

func validCanonicalType(t string) bool {
	switch t {
	case "apartment", "condominium", "house", "townhouse", "office",
		"retail-space", "shop-office", "commercial", "industrial", "land":
		return true
	}
	return false
}

// extractJSON strips markdown fences and surrounding prose from a model
// reply, keeping the outermost JSON object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}
