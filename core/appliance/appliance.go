// Package appliance converts appliance usage hours into monthly consumption
// units using a fixed wattage catalog.
package appliance

import (
	"math"
	"sort"
)

// Spec describes one catalog entry
type Spec struct {
	// Key is the canonical appliance identifier
	Key string `json:"key"`

	// RatedWatts is the assumed power draw while running
	RatedWatts float64 `json:"rated_watts"`
}

// catalog holds the standard household wattages. Immutable after init.
var catalog = map[string]float64{
	"ac":              1500,
	"fridge":          150,
	"fan":             75,
	"light":           20,
	"tv":              100,
	"computer":        200,
	"washing_machine": 500,
	"iron":            1000,
	"microwave":       1000,
	"water_heater":    2000,
	"oven":            2000,
	"dishwasher":      1200,
	"dryer":           3000,
}

// hoursPerMonth converts daily hours to a monthly figure
const hoursPerMonth = 30

// UnitsFromAppliances sums monthly consumption across the supplied usage
// map (appliance key -> hours per day). Unknown keys are ignored, not an
// error; negative hours contribute nothing. The result is rounded to 2
// decimals and floored at zero.
func UnitsFromAppliances(usage map[string]float64) float64 {
	total := 0.0
	for key, hours := range usage {
		watts, ok := catalog[key]
		if !ok || hours <= 0 {
			continue
		}
		// watts -> kW, daily units, then a 30-day month
		total += watts / 1000 * hours * hoursPerMonth
	}

	if total < 0 {
		total = 0
	}
	return math.Round(total*100) / 100
}

// RatedWatts returns the catalog wattage for an appliance key
func RatedWatts(key string) (float64, bool) {
	watts, ok := catalog[key]
	return watts, ok
}

// Catalog returns the full catalog, sorted by key, for display surfaces
func Catalog() []Spec {
	specs := make([]Spec, 0, len(catalog))
	for key, watts := range catalog {
		specs = append(specs, Spec{Key: key, RatedWatts: watts})
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Key < specs[j].Key })
	return specs
}
