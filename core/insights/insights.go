// Package insights derives optimization tips, savings opportunities and a
// confidence score from a final unit estimate and its synthesized features.
// Everything here is a pure function of its inputs, so output is
// deterministic and directly testable.
package insights

import (
	"fmt"

	"bill-optimizer/core/features"
	"bill-optimizer/core/tariff"
)

// Tip selection thresholds on monthly units
const (
	veryHighUnits = 700
	highUnits     = 300
	mediumUnits   = 200
)

// AC heuristic constants: assume 15% of consumption is recoverable from AC
// optimization, priced at a flat estimate rate.
const (
	acSavingsShare     = 0.15
	acFlatEstimateRate = 25.0
	acSavingsThreshold = 30.0
)

var generalTips = []string{
	"LED upgrade: replace all bulbs with LED lights",
	"Phantom load: unplug chargers and electronics when not in use",
	"Natural light: use daylight during daytime hours",
	"Efficient laundry: run full loads on cold water settings",
}

// Tips returns ordered optimization advice: tier-specific first, then
// feature-triggered, then the general set. The order is part of the
// contract.
func Tips(units float64, set features.FeatureSet) []string {
	var tips []string

	switch {
	case units > veryHighUnits:
		tips = append(tips,
			"Very high consumption: professional energy audit recommended",
			"Major savings: reduce AC usage and upgrade to inverter ACs")
	case units > highUnits:
		tips = append(tips,
			"High consumption: focus on AC optimization and peak hour usage",
			"Target: reduce to below 300 units for significant savings")
	case units > mediumUnits:
		tips = append(tips,
			"Medium consumption: good level with optimization opportunities",
			"Goal: stay below 200 units for protected tariff rates")
	default:
		tips = append(tips,
			"Optimal consumption: maintain efficient usage patterns")
	}

	acShare := set.Get(features.ACUsagePercentage)
	if acShare > 50 {
		tips = append(tips,
			"AC optimization: major cost driver - set to 24C and use timers")
	} else if acShare > 25 {
		tips = append(tips,
			"AC management: moderate usage - maintain filters and pair with fans")
	}

	if set.Get(features.PeakOffpeakRatio) > 2 {
		tips = append(tips,
			"Peak usage: shift laundry and cooking to off-peak hours (10 PM - 6 AM)")
	}

	return append(tips, generalTips...)
}

// Opportunities computes currency deltas from reducing consumption to each
// crossed slab boundary, using the rate differential between the adjacent
// slabs of the caller's schedule, plus the AC heuristic when AC share is
// large enough.
func Opportunities(units float64, set features.FeatureSet, slabs []tariff.Slab) []string {
	var opportunities []string

	for i := 0; i < len(slabs)-1; i++ {
		slab := slabs[i]
		if slab.Unbounded() {
			break
		}
		boundary := float64(*slab.MaxUnits)
		if units <= boundary {
			break
		}

		diff := slabs[i+1].Rate.Sub(slab.Rate).InexactFloat64()
		if diff <= 0 {
			continue
		}
		saving := (units - boundary) * diff
		opportunities = append(opportunities,
			fmt.Sprintf("Reduce to %d units: save Rs. %.0f/month", *slab.MaxUnits, saving))
	}

	if set.Get(features.ACUsagePercentage) > acSavingsThreshold {
		saving := units * acSavingsShare * acFlatEstimateRate
		opportunities = append(opportunities,
			fmt.Sprintf("Optimize AC usage: save Rs. %.0f/month", saving))
	}

	return opportunities
}

// Confidence scores how much to trust an estimate: a conservative base plus
// fixed bonuses for a realistic unit band, observed AC usage, and a sane
// daily consumption figure. Capped well below certainty.
func Confidence(units float64, set features.FeatureSet) float64 {
	confidence := 0.7

	if units >= 100 && units <= 1000 {
		confidence += 0.15
	}
	if set.Get(features.ACUsagePercentage) > 0 {
		confidence += 0.1
	}
	if set.Get(features.AvgDailyKWh) > 5 {
		confidence += 0.05
	}

	if confidence > 0.90 {
		confidence = 0.90
	}
	return confidence
}
