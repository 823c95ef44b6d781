// Package features maps coarse household inputs into the derived feature
// space the statistical model was trained on. Every input is clamped before
// use and every derived feature is clamped into its plausible range, which
// keeps the model inside its training distribution.
package features

import (
	"math"

	"bill-optimizer/core/types"
)

// Canonical feature names
const (
	AvgDailyKWh            = "avg_daily_kwh"
	ACUsagePercentage      = "ac_usage_percentage"
	KitchenUsagePercentage = "kitchen_usage_percentage"
	FridgeUsagePercentage  = "fridge_usage_percentage"
	PeakOffpeakRatio       = "peak_offpeak_ratio"
	WeekendRatio           = "weekend_ratio"
	ConsumptionVariability = "consumption_variability"
	LoadFactor             = "load_factor"
	ACDailyHours           = "ac_daily_hours"
	AvgPeakUsage           = "avg_peak_usage"
	SeasonalRatio          = "seasonal_ratio"
	AvgHourlyConsumption   = "avg_hourly_consumption"
	MaxHourlyConsumption   = "max_hourly_consumption"
	BaseLoadKW             = "base_load_kw"
)

// FeatureSet is a named mapping of derived features. Produced fresh per
// request; never persisted.
type FeatureSet map[string]float64

// Get returns a feature value, or 0 when absent
func (f FeatureSet) Get(name string) float64 {
	return f[name]
}

// defaults supplies per-feature fill values for features a model expects
// but synthesis does not produce. Names outside this table default to 0.
var defaults = FeatureSet{
	AvgDailyKWh:            15.0,
	ACUsagePercentage:      25.0,
	KitchenUsagePercentage: 15.0,
	FridgeUsagePercentage:  8.0,
	PeakOffpeakRatio:       1.5,
	WeekendRatio:           1.1,
	ConsumptionVariability: 0.3,
	LoadFactor:             0.4,
	ACDailyHours:           6.0,
	AvgPeakUsage:           1.5,
	SeasonalRatio:          1.3,
	AvgHourlyConsumption:   1.2,
	MaxHourlyConsumption:   2.5,
	BaseLoadKW:             0.3,
}

// Default returns the fill value for a named feature
func Default(name string) float64 {
	return defaults[name]
}

// Assumed per-appliance wattages for the power-share features. These are
// synthesis constants, deliberately coarser than the appliance catalog.
const (
	acWatts     = 1500.0
	fridgeWatts = 150.0
	fanWatts    = 75.0
	otherWatts  = 100.0
)

// Synthesize derives the model feature space from a household description.
// The input is clamped to the core working ranges first; each derived
// feature is then clamped to its own plausible range.
func Synthesize(input types.RawUserInput) FeatureSet {
	in := input.Clamped()

	ac := float64(in.ACUnits)
	fridge := float64(in.FridgeCount)
	fan := float64(in.FanCount)
	other := float64(in.NumAppliances - in.ACUnits - in.FridgeCount - in.FanCount)
	hours := in.UsageHours

	baseDaily := (ac*12 + fridge*3 + fan*2 + other*1) * hours / 10
	avgDaily := clamp(baseDaily, 5, 50)

	acPower := ac * acWatts
	totalPower := acPower + fridge*fridgeWatts + fan*fanWatts + other*otherWatts
	acShare := 20.0
	if totalPower > 0 {
		acShare = math.Min(80, acPower/totalPower*100)
	}

	return FeatureSet{
		AvgDailyKWh:            avgDaily,
		ACUsagePercentage:      acShare,
		KitchenUsagePercentage: math.Min(25, 5+float64(in.HouseholdSize)*3),
		FridgeUsagePercentage:  math.Min(15, fridge*5),
		PeakOffpeakRatio:       math.Min(3.0, 1.2+ac*0.3),
		WeekendRatio:           1.1,
		ConsumptionVariability: math.Min(1.0, 0.2+ac*0.1),
		LoadFactor:             clamp(0.5-ac*0.05, 0.2, 0.8),
		ACDailyHours:           math.Min(24, ac*4),
		AvgPeakUsage:           math.Min(5.0, 1.0+ac*0.5),
		SeasonalRatio:          math.Min(2.0, 1.1+ac*0.2),
		AvgHourlyConsumption:   math.Min(3.0, avgDaily/10),
		MaxHourlyConsumption:   math.Min(8.0, 1.0+ac*1.2),
		BaseLoadKW:             math.Min(1.0, 0.1+fridge*0.2),
	}
}

// Vector assembles the ordered float vector a capability expects. Features
// the set lacks fill from the defaults table; non-finite values are replaced
// with 0 so a pathological feature can never poison the model input.
func Vector(columns []string, set FeatureSet) []float64 {
	vec := make([]float64, len(columns))
	for i, name := range columns {
		v, ok := set[name]
		if !ok {
			v = Default(name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0.0
		}
		vec[i] = v
	}
	return vec
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
