package pricing

import (
	"hash/fnv"
	"math"
	"strings"
	"time"
)

// keywordPrice pairs a lowercase keyword fragment with a numeric value.
// Tables of these are scanned in order with case-insensitive substring
// containment; the first match wins, so entry order is part of the observable
// behavior and must not be reordered.
type keywordPrice struct {
	keyword string
	value   float64
}

// brandRetailTable maps brand keywords to base retail prices.
var brandRetailTable = []keywordPrice{
	{"nike", 140},
	{"jordan", 170},
	{"adidas", 130},
	{"yeezy", 220},
	{"new balance", 130},
	{"asics", 120},
	{"puma", 110},
	{"vans", 70},
	{"converse", 70},
	{"reebok", 100},
}

const defaultBrandRetail = 140

// modelMultiplierTable scales the base retail for popular or limited models.
var modelMultiplierTable = []keywordPrice{
	{"air jordan 1", 1.2},
	{"air jordan 4", 1.3},
	{"air jordan 11", 1.4},
	{"dunk", 1.1},
	{"air force 1", 0.9},
	{"air max", 1.0},
	{"blazer", 1.0},
	{"lebron", 1.1},
	{"yeezy 350", 2.0},
	{"yeezy 700", 2.2},
	{"ultraboost", 1.0},
	{"stan smith", 0.8},
	{"nmd", 0.9},
	{"chuck taylor", 0.7},
	{"old skool", 0.8},
	{"990", 1.5},
	{"550", 1.3},
}

// colorwayMultiplierTable models collector demand for hype colorways.
var colorwayMultiplierTable = []keywordPrice{
	{"bred", 1.3},
	{"chicago", 1.4},
	{"royal", 1.2},
	{"off white", 2.5},
	{"travis scott", 3.0},
	{"fragment", 2.0},
	{"union", 1.8},
	{"dior", 5.0},
	{"black toe", 1.2},
	{"shadow", 1.1},
	{"mocha", 1.5},
	{"obsidian", 1.3},
}

// Confidence tier indicators, matched against the concatenated
// brand+model+colorway text, high tier first.
var (
	highConfidenceIndicators   = []string{"air jordan", "dunk", "yeezy", "off white", "travis scott"}
	mediumConfidenceIndicators = []string{"nike", "adidas", "air max", "ultraboost", "air force"}
)

const (
	// Synthetic market prices sit at a conservative multiple of retail
	// before the hype multiplier is applied.
	baseMarketMultiplier = 1.5
	// The synthetic price range spans ±15% of the market price.
	demoRangeFraction = 0.15
)

const demoNote = "This is demonstration data showing how real-time pricing works"

// matchKeyword scans an ordered table for the first keyword contained in
// text. Matching is case-insensitive; text is expected pre-lowered.
func matchKeyword(table []keywordPrice, text string, fallback float64) float64 {
	for _, entry := range table {
		if strings.Contains(text, entry.keyword) {
			return entry.value
		}
	}
	return fallback
}

// priceOffset derives a stable pseudo-random offset in [-20, +20] from the
// request identity, so identical inputs always price identically. A
// well-distributed non-cryptographic hash is all that is needed here.
func priceOffset(brand, model, colorway string) float64 {
	h := fnv.New32a()
	h.Write([]byte(brand + model + colorway))
	firstByte := byte(h.Sum32() >> 24)
	return float64(int(firstByte%40) - 20)
}

// syntheticPricing derives retail and market prices from the keyword tables.
func syntheticPricing(req LookupRequest) (retail, market float64) {
	brand := strings.ToLower(req.Brand)
	model := strings.ToLower(req.Model)
	colorway := strings.ToLower(req.Colorway)

	base := matchKeyword(brandRetailTable, brand, defaultBrandRetail)
	modelMult := matchKeyword(modelMultiplierTable, model, 1.0)
	colorwayMult := matchKeyword(colorwayMultiplierTable, colorway, 1.0)

	retail = math.Round(base * modelMult)
	market = math.Round(retail*baseMarketMultiplier*colorwayMult) +
		priceOffset(req.Brand, req.Model, req.Colorway)

	// Synthetic market price never undercuts retail.
	if market < retail {
		market = retail
	}
	return retail, market
}

// estimateConfidence derives the synthetic confidence tier from popularity
// indicators, highest tier first.
func estimateConfidence(req LookupRequest) Confidence {
	text := strings.ToLower(req.Brand + " " + req.Model + " " + req.Colorway)
	for _, indicator := range highConfidenceIndicators {
		if strings.Contains(text, indicator) {
			return ConfidenceHigh
		}
	}
	for _, indicator := range mediumConfidenceIndicators {
		if strings.Contains(text, indicator) {
			return ConfidenceMedium
		}
	}
	return ConfidenceLow
}

// GenerateFallback produces a complete synthetic response for a request no
// live source could answer. Deterministic and content-addressed: two calls
// with identical inputs yield identical prices.
func GenerateFallback(req LookupRequest, now time.Time) Response {
	retail, market := syntheticPricing(req)

	variance := market * demoRangeFraction
	minPrice := market - variance
	if minPrice < retail {
		minPrice = retail
	}
	maxPrice := market + variance

	name := req.Brand + " " + req.Model
	if req.Colorway != "" {
		name += " " + req.Colorway
	}

	return Response{
		Brand:       req.Brand,
		Model:       req.Model,
		Colorway:    req.Colorway,
		SKU:         req.SKU,
		Size:        req.Size,
		LastUpdated: now.UTC(),
		Sources: map[string]SourceRecord{
			"demo": {
				Platform:    "DEMO DATA",
				Name:        name,
				Brand:       req.Brand,
				RetailPrice: ptr(retail),
				MarketPrice: ptr(market),
				Note:        demoNote,
			},
		},
		Summary: Summary{
			RetailPrice:        ptr(retail),
			CurrentMarketPrice: ptr(market),
			PriceRange: PriceRange{
				Min: ptr(round2(minPrice)),
				Max: ptr(round2(maxPrice)),
			},
			SourcesCount: 1,
			Confidence:   estimateConfidence(req),
			Note:         "DEMO DATA - Enable API access for real pricing",
		},
		IsDemo: true,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
