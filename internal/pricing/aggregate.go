package pricing

// Aggregate reconciles the per-source records into one Summary. Pure
// function, no I/O.
//
// Records carrying an error marker are discarded entirely. Each remaining
// record contributes its size-specific price when present, else its generic
// market price; records with neither are skipped for market purposes but may
// still contribute a retail price. Every contributing source counts equally.
func Aggregate(sources map[string]SourceRecord) Summary {
	summary := Summary{
		SourcesCount: len(sources),
		Confidence:   ConfidenceLow,
	}

	var marketPrices []float64
	var retailPrices []float64

	for _, rec := range sources {
		if rec.Err != "" {
			continue
		}
		switch {
		case rec.SizeSpecificPrice != nil:
			marketPrices = append(marketPrices, *rec.SizeSpecificPrice)
		case rec.MarketPrice != nil:
			marketPrices = append(marketPrices, *rec.MarketPrice)
		}
		if rec.RetailPrice != nil {
			retailPrices = append(retailPrices, *rec.RetailPrice)
		}
	}

	if len(marketPrices) > 0 {
		mean := mean(marketPrices)
		lo, hi := minMax(marketPrices)

		summary.CurrentMarketPrice = ptr(mean)
		summary.PriceRange = PriceRange{Min: ptr(lo), Max: ptr(hi)}

		if len(marketPrices) >= 2 {
			// Two or more agreeing sources are trustworthy; a spread wider
			// than 10% of the mean drops the tier back to medium.
			if hi-lo <= mean*0.10 {
				summary.Confidence = ConfidenceHigh
			} else {
				summary.Confidence = ConfidenceMedium
			}
		} else {
			summary.Confidence = ConfidenceMedium
		}
	}

	if len(retailPrices) > 0 {
		summary.RetailPrice = ptr(mean(retailPrices))
	}

	return summary
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
