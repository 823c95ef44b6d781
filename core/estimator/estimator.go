// Package estimator orchestrates bill estimation: feature synthesis, the
// statistical capability, tariff reconciliation and insight generation.
// Every internal failure degrades to the deterministic fallback path, which
// makes Estimate total over its declared input domain: no error ever
// reaches the caller.
package estimator

import (
	"context"
	"math"

	"go.uber.org/zap"

	"bill-optimizer/core/features"
	"bill-optimizer/core/insights"
	"bill-optimizer/core/predictor"
	"bill-optimizer/core/tariff"
	"bill-optimizer/core/types"
	"bill-optimizer/internal/logging"
	"bill-optimizer/internal/metrics"
)

// Plausibility band for a predicted bill: the model can extrapolate
// nonsensically for unusual inputs, so its output is clamped regardless of
// what it returns.
const (
	minPlausibleBill = 500.0
	maxPlausibleBill = 50000.0
)

// Reconciled unit estimates are confined to a realistic household band.
const (
	minPlausibleUnits = 50.0
	maxPlausibleUnits = 2000.0
)

// Estimator produces EstimationResults from raw household inputs. The
// tariff table and the statistical capability are injected at construction;
// a nil capability sends every request down the deterministic path.
type Estimator struct {
	table      *tariff.Table
	capability predictor.Capability
	log        *zap.Logger
}

// New creates an estimator
func New(table *tariff.Table, capability predictor.Capability) *Estimator {
	return &Estimator{
		table:      table,
		capability: capability,
		log:        logging.Named("estimator"),
	}
}

// ModelInfo describes the loaded statistical capability, or nil when the
// estimator runs purely deterministic.
func (e *Estimator) ModelInfo() *types.ModelInfo {
	if e.capability == nil {
		return nil
	}
	info := e.capability.Info()
	return &info
}

// Estimate runs the full estimation pipeline. It never returns an error:
// the statistical path falling over in any way (error, panic, non-finite
// output) degrades to the fallback, which is pure arithmetic over clamped
// inputs and cannot fail.
func (e *Estimator) Estimate(ctx context.Context, input types.RawUserInput) types.EstimationResult {
	in := input.Clamped()
	cat := in.Category()
	set := features.Synthesize(in)

	result, reason := e.modelPath(ctx, in, cat, set)
	if reason != "" {
		metrics.FallbacksTotal.WithLabelValues(reason).Inc()
		e.log.Debug("statistical path unavailable, using deterministic fallback",
			zap.String("reason", reason))
		result = e.fallback(in, cat, set)
	}

	metrics.EstimatesTotal.WithLabelValues(string(result.Method)).Inc()
	return result
}

// modelPath attempts the statistical route. A non-empty reason means the
// caller must fall back.
func (e *Estimator) modelPath(ctx context.Context, in types.RawUserInput, cat types.ConsumerCategory, set features.FeatureSet) (result types.EstimationResult, reason string) {
	if e.capability == nil {
		return result, "no_capability"
	}

	// A misbehaving capability must not take the request down with it.
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn("statistical capability panicked", zap.Any("panic", r))
			result, reason = types.EstimationResult{}, "panic"
		}
	}()

	vector := features.Vector(e.capability.FeatureColumns(), set)
	raw, err := e.capability.Predict(ctx, vector)
	if err != nil {
		e.log.Debug("capability returned error", zap.Error(err))
		return result, "predict_error"
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return result, "non_finite"
	}

	// Plausibility clamp: a hard guarantee, not a suggestion.
	bill := clamp(raw, minPlausibleBill, maxPlausibleBill)
	units := unitsFromBill(bill)

	// Slab, tips and savings all derive from the reconciled units, keeping
	// the displayed slab consistent with the displayed consumption.
	slabs := e.table.RateSlabs(cat)
	info := e.capability.Info()

	return types.EstimationResult{
		PredictedBill:        round2(bill),
		EstimatedUnits:       round2(units),
		TariffSlab:           e.table.SlabForUnits(units, cat),
		OptimizationTips:     insights.Tips(units, set),
		SavingsOpportunities: insights.Opportunities(units, set, slabs),
		Confidence:           insights.Confidence(units, set),
		Method:               types.MethodModel,
		Model:                &info,
	}, ""
}

// unitsFromBill inverts a bill into a unit estimate via a stepped
// average-rate heuristic: lower bills assume a lower blended per-unit rate.
// These steps are deliberately NOT the tariff schedule; they approximate
// the blended rate a household at that bill level actually pays.
func unitsFromBill(bill float64) float64 {
	var avgRate float64
	switch {
	case bill < 2000:
		avgRate = 18
	case bill < 5000:
		avgRate = 22
	case bill < 10000:
		avgRate = 28
	default:
		avgRate = 32
	}

	return clamp(bill/avgRate, minPlausibleUnits, maxPlausibleUnits)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
