// Package tariff - Slab schedule invariant tests
// These tests pin the progressive accumulation to the published NEPRA
// figures and prove the structural invariants reject malformed schedules.
package tariff

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"bill-optimizer/core/types"
	"bill-optimizer/internal/errors"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestGeneral250Units pins the canonical General-category computation:
// 100*16.48 + 100*22.95 + 50*26.66 = 5276
func TestGeneral250Units(t *testing.T) {
	table := NewDefaultTable()

	bill := table.BillForUnits(250, types.CategoryGeneral)
	if !almostEqual(bill, 5276) {
		t.Fatalf("General 250 units: expected 5276, got %v", bill)
	}
}

// TestProtected150Units pins 100*7.74 + 50*10.06 = 1277
func TestProtected150Units(t *testing.T) {
	table := NewDefaultTable()

	bill := table.BillForUnits(150, types.CategoryProtected)
	if !almostEqual(bill, 1277) {
		t.Fatalf("Protected 150 units: expected 1277, got %v", bill)
	}
}

// TestZeroUnitsBillsZero proves bill(0) == 0 for every category
func TestZeroUnitsBillsZero(t *testing.T) {
	table := NewDefaultTable()

	for _, cat := range table.Categories() {
		if bill := table.BillForUnits(0, cat); bill != 0 {
			t.Errorf("%s: bill for 0 units = %v, want 0", cat, bill)
		}
		if bill := table.BillForUnits(-25, cat); bill != 0 {
			t.Errorf("%s: bill for negative units = %v, want 0", cat, bill)
		}
	}
}

// TestMonotonicNonDecreasing proves the bill never drops as units rise
func TestMonotonicNonDecreasing(t *testing.T) {
	table := NewDefaultTable()

	for _, cat := range table.Categories() {
		prev := 0.0
		for units := 0.0; units <= 1200; units += 7.3 {
			bill := table.BillForUnits(units, cat)
			if bill < prev {
				t.Fatalf("%s: bill decreased from %v to %v at %v units", cat, prev, bill, units)
			}
			prev = bill
		}
	}
}

// TestBoundaryContinuity proves the step across each slab boundary is
// bounded by the next slab's rate: bill(max) <= bill(max+1) <= bill(max) + next.rate
func TestBoundaryContinuity(t *testing.T) {
	table := NewDefaultTable()

	for _, cat := range table.Categories() {
		slabs := table.RateSlabs(cat)
		for i, slab := range slabs {
			if slab.Unbounded() {
				continue
			}
			b := float64(*slab.MaxUnits)
			atBoundary := table.BillForUnits(b, cat)
			oneAbove := table.BillForUnits(b+1, cat)
			nextRate := slabs[i+1].Rate.InexactFloat64()

			if oneAbove < atBoundary {
				t.Errorf("%s: bill(%v+1)=%v < bill(%v)=%v", cat, b, oneAbove, b, atBoundary)
			}
			if oneAbove > atBoundary+nextRate+1e-9 {
				t.Errorf("%s: bill(%v+1)=%v exceeds bill(%v)+next rate=%v",
					cat, b, oneAbove, b, atBoundary+nextRate)
			}
		}
	}
}

// TestBoundaryBelongsToLowerSlab proves a figure exactly on a boundary is
// billed and classified entirely within the lower slab
func TestBoundaryBelongsToLowerSlab(t *testing.T) {
	table := NewDefaultTable()

	// 100 units of General billed entirely at 16.48
	bill := table.BillForUnits(100, types.CategoryGeneral)
	if !almostEqual(bill, 1648) {
		t.Errorf("General 100 units: expected 1648, got %v", bill)
	}

	ref := table.SlabForUnits(100, types.CategoryGeneral)
	if ref.Label != "1-100 units" {
		t.Errorf("slab for 100 units: expected 1-100 units, got %s", ref.Label)
	}
	ref = table.SlabForUnits(101, types.CategoryGeneral)
	if ref.Label != "101-200 units" {
		t.Errorf("slab for 101 units: expected 101-200 units, got %s", ref.Label)
	}
}

// TestBreakdownSumsToBill proves line items reconcile with the total
func TestBreakdownSumsToBill(t *testing.T) {
	table := NewDefaultTable()

	total, lines := table.Breakdown(250, types.CategoryGeneral)
	if len(lines) != 3 {
		t.Fatalf("expected 3 breakdown lines for 250 units, got %d", len(lines))
	}

	sum := 0.0
	for _, line := range lines {
		sum += line.Amount
	}
	if !almostEqual(sum, total) {
		t.Errorf("breakdown sum %v != total %v", sum, total)
	}
	if lines[2].Units != 50 {
		t.Errorf("partial slab line: expected 50 units, got %v", lines[2].Units)
	}
}

// TestUnknownCategoryResolvesToGeneral proves lookups cannot fail mid-request
func TestUnknownCategoryResolvesToGeneral(t *testing.T) {
	table := NewDefaultTable()

	got := table.BillForUnits(250, types.ConsumerCategory("Commercial"))
	want := table.BillForUnits(250, types.CategoryGeneral)
	if !almostEqual(got, want) {
		t.Errorf("unknown category bill %v, want General bill %v", got, want)
	}
}

// TestValidateRejectsGap proves non-contiguous schedules are fatal
func TestValidateRejectsGap(t *testing.T) {
	bad := Schedule{
		types.CategoryGeneral: {
			{Category: types.CategoryGeneral, MinUnits: 1, MaxUnits: bounded(100), Rate: decimal.NewFromFloat(16.48), Label: "1-100 units"},
			{Category: types.CategoryGeneral, MinUnits: 150, Rate: decimal.NewFromFloat(22.95), Label: "150+ units"},
		},
	}

	err := bad.Validate()
	if err == nil {
		t.Fatal("expected validation error for gapped schedule")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected CONFIG_ERROR, got %v", err)
	}
}

// TestValidateRejectsBoundedTail proves the last slab must be unbounded
func TestValidateRejectsBoundedTail(t *testing.T) {
	bad := Schedule{
		types.CategoryLifeline: {
			{Category: types.CategoryLifeline, MinUnits: 1, MaxUnits: bounded(100), Rate: decimal.NewFromFloat(3.95), Label: "1-100 units"},
		},
	}

	if err := bad.Validate(); err == nil {
		t.Fatal("expected validation error when last slab is bounded")
	}
}

// TestValidateRejectsMisplacedUnboundedSlab proves only the tail may be open
func TestValidateRejectsMisplacedUnboundedSlab(t *testing.T) {
	bad := Schedule{
		types.CategoryLifeline: {
			{Category: types.CategoryLifeline, MinUnits: 1, Rate: decimal.NewFromFloat(3.95), Label: "1+ units"},
			{Category: types.CategoryLifeline, MinUnits: 101, Rate: decimal.NewFromFloat(7.74), Label: "101+ units"},
		},
	}

	if err := bad.Validate(); err == nil {
		t.Fatal("expected validation error for unbounded slab before the tail")
	}
}

// TestReplaceKeepsOldScheduleOnError proves a bad reload never goes live
func TestReplaceKeepsOldScheduleOnError(t *testing.T) {
	table := NewDefaultTable()

	bad := Schedule{
		types.CategoryGeneral: {
			{Category: types.CategoryGeneral, MinUnits: 5, Rate: decimal.NewFromFloat(1), Label: "broken"},
		},
	}
	if err := table.Replace(bad); err == nil {
		t.Fatal("expected Replace to reject invalid schedule")
	}

	// The previous schedule must still serve correct figures.
	if bill := table.BillForUnits(250, types.CategoryGeneral); !almostEqual(bill, 5276) {
		t.Errorf("after failed replace: expected 5276, got %v", bill)
	}
}

// TestLoadScheduleFromHCL proves the HCL loader round-trips a schedule
func TestLoadScheduleFromHCL(t *testing.T) {
	doc := `
category "Protected" {
  slab {
    min  = 1
    max  = 100
    rate = 7.74
  }
  slab {
    min  = 101
    max  = 200
    rate = 10.06
  }
  slab {
    min  = 201
    rate = 12.15
  }
}
`
	path := filepath.Join(t.TempDir(), "tariff.hcl")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	schedule, err := LoadSchedule(path)
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}

	table, err := NewTable(schedule)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if bill := table.BillForUnits(150, types.CategoryProtected); !almostEqual(bill, 1277) {
		t.Errorf("HCL-loaded Protected 150 units: expected 1277, got %v", bill)
	}
}

// TestLoadScheduleRejectsUnknownCategory proves config typos fail loudly
func TestLoadScheduleRejectsUnknownCategory(t *testing.T) {
	doc := `
category "Industrial" {
  slab {
    min  = 1
    rate = 9.99
  }
}
`
	path := filepath.Join(t.TempDir(), "tariff.hcl")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSchedule(path); err == nil {
		t.Fatal("expected error for unknown category in config file")
	}
}
