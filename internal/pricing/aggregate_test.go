package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(map[string]SourceRecord{})

	assert.Equal(t, 0, s.SourcesCount)
	assert.Equal(t, ConfidenceLow, s.Confidence)
	assert.Nil(t, s.CurrentMarketPrice)
	assert.Nil(t, s.RetailPrice)
	assert.Nil(t, s.PriceRange.Min)
	assert.Nil(t, s.PriceRange.Max)
}

func TestAggregateErrorRecordsDiscarded(t *testing.T) {
	s := Aggregate(map[string]SourceRecord{
		"stockx":      {MarketPrice: ptr(200)},
		"alternative": {MarketPrice: ptr(9999), Err: "timeout"},
	})

	// The failed source still counts as attempted but contributes nothing.
	assert.Equal(t, 2, s.SourcesCount)
	require.NotNil(t, s.CurrentMarketPrice)
	assert.Equal(t, 200.0, *s.CurrentMarketPrice)
	assert.Equal(t, ConfidenceMedium, s.Confidence)
}

func TestAggregateSizeSpecificPreferred(t *testing.T) {
	s := Aggregate(map[string]SourceRecord{
		"stockx": {MarketPrice: ptr(300), SizeSpecificPrice: ptr(250)},
	})

	require.NotNil(t, s.CurrentMarketPrice)
	assert.Equal(t, 250.0, *s.CurrentMarketPrice)
}

func TestAggregateSingleSourceMediumConfidence(t *testing.T) {
	s := Aggregate(map[string]SourceRecord{
		"stockx": {MarketPrice: ptr(210), RetailPrice: ptr(170)},
	})

	assert.Equal(t, ConfidenceMedium, s.Confidence)
	assert.Equal(t, 210.0, *s.CurrentMarketPrice)
	assert.Equal(t, 210.0, *s.PriceRange.Min)
	assert.Equal(t, 210.0, *s.PriceRange.Max)
	assert.Equal(t, 170.0, *s.RetailPrice)
}

func TestAggregateAgreeingSourcesHighConfidence(t *testing.T) {
	s := Aggregate(map[string]SourceRecord{
		"stockx":      {MarketPrice: ptr(200)},
		"alternative": {MarketPrice: ptr(210)},
	})

	// Spread 10 against a mean of 205 is within the 10% band.
	assert.Equal(t, ConfidenceHigh, s.Confidence)
	assert.Equal(t, 205.0, *s.CurrentMarketPrice)
	assert.Equal(t, 200.0, *s.PriceRange.Min)
	assert.Equal(t, 210.0, *s.PriceRange.Max)
}

func TestAggregateDisagreeingSourcesMediumConfidence(t *testing.T) {
	s := Aggregate(map[string]SourceRecord{
		"stockx":      {MarketPrice: ptr(150)},
		"alternative": {MarketPrice: ptr(300)},
	})

	assert.Equal(t, ConfidenceMedium, s.Confidence)
	assert.Equal(t, 225.0, *s.CurrentMarketPrice)
}

func TestAggregateRetailIndependentOfMarket(t *testing.T) {
	// A record without any market price still contributes its retail price.
	s := Aggregate(map[string]SourceRecord{
		"stockx":      {RetailPrice: ptr(170)},
		"alternative": {RetailPrice: ptr(190), MarketPrice: ptr(260)},
	})

	require.NotNil(t, s.RetailPrice)
	assert.Equal(t, 180.0, *s.RetailPrice)
	assert.Equal(t, 260.0, *s.CurrentMarketPrice)
	assert.Equal(t, ConfidenceMedium, s.Confidence)
}

func TestAggregateAllErrored(t *testing.T) {
	s := Aggregate(map[string]SourceRecord{
		"stockx":      {Err: "boom"},
		"alternative": {Err: "boom"},
	})

	assert.Equal(t, 2, s.SourcesCount)
	assert.Nil(t, s.CurrentMarketPrice)
	assert.Equal(t, ConfidenceLow, s.Confidence)
}
