// Package estimator - Deterministic fallback path
package estimator

import (
	"bill-optimizer/core/features"
	"bill-optimizer/core/insights"
	"bill-optimizer/core/types"
)

// daysPerMonth scales the daily formula to a billing month
const daysPerMonth = 30

// fallbackConfidence signals "deterministic, not statistically derived"
const fallbackConfidence = 0.8

// fallbackModelInfo labels results the deterministic path produced
var fallbackModelInfo = types.ModelInfo{
	Name: "Deterministic Calculator",
}

// fallback computes the estimate without the statistical capability: a
// fixed linear formula over the clamped appliance counts, with a caller's
// plausible previous reading preferred verbatim. Pure arithmetic; cannot
// fail.
func (e *Estimator) fallback(in types.RawUserInput, cat types.ConsumerCategory, set features.FeatureSet) types.EstimationResult {
	units := fallbackUnits(in)

	bill, lines := e.table.Breakdown(units, cat)
	slabs := e.table.RateSlabs(cat)
	info := fallbackModelInfo

	return types.EstimationResult{
		PredictedBill:        bill,
		EstimatedUnits:       round2(units),
		TariffSlab:           e.table.SlabForUnits(units, cat),
		Breakdown:            lines,
		OptimizationTips:     insights.Tips(units, set),
		SavingsOpportunities: insights.Opportunities(units, set, slabs),
		Confidence:           fallbackConfidence,
		Method:               types.MethodFallback,
		Model:                &info,
	}
}

// fallbackUnits derives monthly consumption deterministically. A previous
// reading inside the plausible band wins over the formula, exactly as
// supplied.
func fallbackUnits(in types.RawUserInput) float64 {
	if in.PreviousUnits >= minPlausibleUnits && in.PreviousUnits <= maxPlausibleUnits {
		return in.PreviousUnits
	}

	base := (float64(in.ACUnits)*10 + float64(in.FridgeCount)*2 + float64(in.FanCount)*1 + 5) * in.UsageHours / 8
	monthly := base * daysPerMonth

	return clamp(monthly, minPlausibleUnits, maxPlausibleUnits)
}
