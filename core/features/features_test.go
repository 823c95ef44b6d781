package features

import (
	"math"
	"testing"

	"bill-optimizer/core/types"
)

func baseInput() types.RawUserInput {
	return types.RawUserInput{
		HouseholdSize: 4,
		NumAppliances: 10,
		ACUnits:       1,
		FridgeCount:   1,
		FanCount:      3,
		UsageHours:    8,
		PreviousUnits: 200,
		Region:        "Urban",
		ConsumerType:  "General",
	}
}

// TestSynthesizeKnownHousehold pins the derived formulas for a typical home
func TestSynthesizeKnownHousehold(t *testing.T) {
	set := Synthesize(baseInput())

	// base daily = (1*12 + 1*3 + 3*2 + 5*1) * 8 / 10 = 20.8
	if got := set.Get(AvgDailyKWh); math.Abs(got-20.8) > 1e-9 {
		t.Errorf("avg_daily_kwh: expected 20.8, got %v", got)
	}

	// ac power 1500 of total 1500+150+225+500 = 2375 -> 63.157...%
	want := 1500.0 / 2375.0 * 100
	if got := set.Get(ACUsagePercentage); math.Abs(got-want) > 1e-9 {
		t.Errorf("ac_usage_percentage: expected %v, got %v", want, got)
	}

	if got := set.Get(KitchenUsagePercentage); math.Abs(got-17) > 1e-9 {
		t.Errorf("kitchen_usage_percentage: expected 17, got %v", got)
	}
	if got := set.Get(PeakOffpeakRatio); math.Abs(got-1.5) > 1e-9 {
		t.Errorf("peak_offpeak_ratio: expected 1.5, got %v", got)
	}
	if got := set.Get(LoadFactor); math.Abs(got-0.45) > 1e-9 {
		t.Errorf("load_factor: expected 0.45, got %v", got)
	}
	if got := set.Get(WeekendRatio); got != 1.1 {
		t.Errorf("weekend_ratio: expected 1.1, got %v", got)
	}
}

// TestSynthesizeClampsExtremes proves every derived feature lands inside
// its declared plausible range even for absurd (boundary-legal) inputs
func TestSynthesizeClampsExtremes(t *testing.T) {
	in := types.RawUserInput{
		HouseholdSize: 15,
		NumAppliances: 50,
		ACUnits:       10, // core clamps to 5
		FridgeCount:   5,  // core clamps to 3
		FanCount:      20, // core clamps to 10
		UsageHours:    24,
		PreviousUnits: 5000,
	}
	set := Synthesize(in)

	ranges := map[string][2]float64{
		AvgDailyKWh:            {5, 50},
		ACUsagePercentage:      {0, 80},
		KitchenUsagePercentage: {0, 25},
		FridgeUsagePercentage:  {0, 15},
		PeakOffpeakRatio:       {0, 3.0},
		ConsumptionVariability: {0, 1.0},
		LoadFactor:             {0.2, 0.8},
		ACDailyHours:           {0, 24},
		AvgPeakUsage:           {0, 5.0},
		SeasonalRatio:          {0, 2.0},
		AvgHourlyConsumption:   {0, 3.0},
		MaxHourlyConsumption:   {0, 8.0},
		BaseLoadKW:             {0, 1.0},
	}
	for name, r := range ranges {
		v := set.Get(name)
		if v < r[0] || v > r[1] {
			t.Errorf("%s = %v outside [%v, %v]", name, v, r[0], r[1])
		}
	}
}

// TestSynthesizeIsPureAndDeterministic proves identical input yields an
// identical feature set
func TestSynthesizeIsPureAndDeterministic(t *testing.T) {
	a := Synthesize(baseInput())
	b := Synthesize(baseInput())
	if len(a) != len(b) {
		t.Fatalf("feature set sizes differ: %d vs %d", len(a), len(b))
	}
	for name, v := range a {
		if b[name] != v {
			t.Errorf("%s differs across calls: %v vs %v", name, v, b[name])
		}
	}
}

// TestVectorOrderingAndDefaults proves vector assembly honors the
// capability's column order, fills gaps from defaults, and scrubs
// non-finite values
func TestVectorOrderingAndDefaults(t *testing.T) {
	set := FeatureSet{
		AvgDailyKWh: 21.5,
		BaseLoadKW:  math.NaN(),
	}
	columns := []string{BaseLoadKW, "mystery_feature", AvgDailyKWh, SeasonalRatio}

	vec := Vector(columns, set)
	if len(vec) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(vec))
	}
	if vec[0] != 0 {
		t.Errorf("NaN feature should scrub to 0, got %v", vec[0])
	}
	if vec[1] != 0 {
		t.Errorf("unknown feature should default to 0, got %v", vec[1])
	}
	if vec[2] != 21.5 {
		t.Errorf("expected 21.5 at index 2, got %v", vec[2])
	}
	if vec[3] != Default(SeasonalRatio) {
		t.Errorf("missing feature should fill from defaults: expected %v, got %v",
			Default(SeasonalRatio), vec[3])
	}
}
