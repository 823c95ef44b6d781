// Package tariff - Built-in NEPRA schedule
package tariff

import (
	"fmt"

	"github.com/shopspring/decimal"

	"bill-optimizer/core/types"
)

// DefaultSchedule returns the NEPRA residential schedule. This is the single
// source of tariff truth: the statistical path's reconciliation, the
// deterministic fallback, the appliance calculator and the API all bill
// against the table built from it.
func DefaultSchedule() Schedule {
	return Schedule{
		types.CategoryLifeline: category(types.CategoryLifeline, []slabDef{
			{1, bounded(100), "3.95"},
			{101, nil, "7.74"},
		}),
		types.CategoryProtected: category(types.CategoryProtected, []slabDef{
			{1, bounded(100), "7.74"},
			{101, bounded(200), "10.06"},
			{201, nil, "12.15"},
		}),
		types.CategoryGeneral: category(types.CategoryGeneral, []slabDef{
			{1, bounded(100), "16.48"},
			{101, bounded(200), "22.95"},
			{201, bounded(300), "26.66"},
			{301, bounded(700), "32.03"},
			{701, nil, "35.53"},
		}),
	}
}

// SavingsNotes are the per-slab advisory strings served alongside the
// schedule by the tariff info endpoint.
var SavingsNotes = map[types.ConsumerCategory][]string{
	types.CategoryLifeline: {
		"Ideal for small families, try to stay below 100 units",
		"You lose lifeline benefits above 100 units",
	},
	types.CategoryProtected: {
		"Good for medium consumption households",
		"Stay below 200 units for optimal rates",
		"Crossing 200 units increases cost significantly",
	},
	types.CategoryGeneral: {
		"High base rate - optimize usage patterns",
		"Focus on energy efficiency measures",
		"AC usage is major contributor at this level",
		"Time to audit and optimize all appliances",
		"High consumption - professional audit recommended",
	},
}

type slabDef struct {
	min  int
	max  *int
	rate string
}

func category(cat types.ConsumerCategory, defs []slabDef) []Slab {
	slabs := make([]Slab, len(defs))
	for i, d := range defs {
		slabs[i] = Slab{
			Category: cat,
			MinUnits: d.min,
			MaxUnits: d.max,
			Rate:     decimal.RequireFromString(d.rate),
			Label:    rangeLabel(d.min, d.max),
		}
	}
	return slabs
}

func bounded(n int) *int {
	return &n
}

func rangeLabel(min int, max *int) string {
	if max == nil {
		return fmt.Sprintf("%d+ units", min)
	}
	return fmt.Sprintf("%d-%d units", min, *max)
}
