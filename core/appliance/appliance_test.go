package appliance

import (
	"math"
	"testing"
)

// TestACAndFridgeScenario pins the documented example:
// ac 5h -> 1500*5/1000*30 = 225, fridge 24h -> 150*24/1000*30 = 108
func TestACAndFridgeScenario(t *testing.T) {
	units := UnitsFromAppliances(map[string]float64{
		"ac":     5,
		"fridge": 24,
	})

	if math.Abs(units-333) > 1e-9 {
		t.Fatalf("expected 333 units, got %v", units)
	}
}

// TestUnknownKeysIgnored proves unrecognized appliances are skipped silently
func TestUnknownKeysIgnored(t *testing.T) {
	units := UnitsFromAppliances(map[string]float64{
		"ac":           5,
		"quantum_oven": 12,
		"hoverboard":   3,
	})

	if math.Abs(units-225) > 1e-9 {
		t.Errorf("unknown keys should not contribute: expected 225, got %v", units)
	}
}

// TestNegativeHoursContributeNothing proves the floor at zero
func TestNegativeHoursContributeNothing(t *testing.T) {
	units := UnitsFromAppliances(map[string]float64{
		"ac":     -5,
		"fridge": -24,
	})
	if units != 0 {
		t.Errorf("negative hours: expected 0 units, got %v", units)
	}

	if units := UnitsFromAppliances(nil); units != 0 {
		t.Errorf("nil usage map: expected 0 units, got %v", units)
	}
}

// TestRoundedToTwoDecimals proves output precision
func TestRoundedToTwoDecimals(t *testing.T) {
	// light 20W for 1.11h/day -> 20/1000*1.11*30 = 0.666 -> 0.67
	units := UnitsFromAppliances(map[string]float64{"light": 1.11})
	if math.Abs(units-0.67) > 1e-9 {
		t.Errorf("expected 0.67, got %v", units)
	}
}

// TestCatalogStable proves the display catalog is sorted and complete
func TestCatalogStable(t *testing.T) {
	specs := Catalog()
	if len(specs) != 13 {
		t.Fatalf("expected 13 catalog entries, got %d", len(specs))
	}
	for i := 1; i < len(specs); i++ {
		if specs[i-1].Key >= specs[i].Key {
			t.Fatalf("catalog not sorted at %q >= %q", specs[i-1].Key, specs[i].Key)
		}
	}
	if watts, ok := RatedWatts("dryer"); !ok || watts != 3000 {
		t.Errorf("dryer: expected 3000W, got %v (ok=%v)", watts, ok)
	}
}
