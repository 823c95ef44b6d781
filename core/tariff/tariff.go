// Package tariff implements the progressive NEPRA slab schedule and all
// bill-from-units math. Every code path that turns a unit figure into
// currency goes through this package; the schedule is defined exactly once.
package tariff

import (
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"bill-optimizer/core/types"
	"bill-optimizer/internal/errors"
)

// Slab is one contiguous unit range billed at a fixed per-unit rate.
// MaxUnits == nil means the slab is unbounded; exactly one such slab exists
// per category and it is always the last.
type Slab struct {
	Category types.ConsumerCategory `json:"category"`
	MinUnits int                    `json:"min_units"`
	MaxUnits *int                   `json:"max_units,omitempty"`
	Rate     decimal.Decimal        `json:"rate"`
	Label    string                 `json:"label"`
}

// Unbounded reports whether the slab has no upper limit
func (s Slab) Unbounded() bool {
	return s.MaxUnits == nil
}

// Ref converts the slab to its result-facing reference form
func (s Slab) Ref() types.SlabRef {
	return types.SlabRef{
		Category: s.Category,
		Label:    s.Label,
		Rate:     s.Rate.InexactFloat64(),
	}
}

// Schedule maps consumer categories to their ordered slabs
type Schedule map[types.ConsumerCategory][]Slab

// Validate checks the structural invariants of the schedule: slabs per
// category are contiguous, non-overlapping, ascending, start at unit 1, and
// terminate in a single unbounded slab. A malformed schedule is a fatal
// configuration error; the process must not serve with one.
func (s Schedule) Validate() error {
	if len(s) == 0 {
		return errors.Config("tariff schedule has no categories")
	}

	for cat, slabs := range s {
		if len(slabs) == 0 {
			return errors.Config("empty slab list").WithContext("category", cat.String())
		}
		if slabs[0].MinUnits != 1 {
			return errors.Newf(errors.TypeConfig,
				"category %s: first slab must start at unit 1, got %d", cat, slabs[0].MinUnits)
		}

		for i, slab := range slabs {
			if slab.Rate.Sign() <= 0 {
				return errors.Newf(errors.TypeConfig,
					"category %s: slab %q has non-positive rate", cat, slab.Label)
			}
			if slab.Unbounded() {
				if i != len(slabs)-1 {
					return errors.Newf(errors.TypeConfig,
						"category %s: unbounded slab %q is not last", cat, slab.Label)
				}
				continue
			}
			if *slab.MaxUnits < slab.MinUnits {
				return errors.Newf(errors.TypeConfig,
					"category %s: slab %q has max %d below min %d", cat, slab.Label, *slab.MaxUnits, slab.MinUnits)
			}
			if i == len(slabs)-1 {
				return errors.Newf(errors.TypeConfig,
					"category %s: last slab %q must be unbounded", cat, slab.Label)
			}
			if next := slabs[i+1]; next.MinUnits != *slab.MaxUnits+1 {
				return errors.Newf(errors.TypeConfig,
					"category %s: slab %q (max %d) is not contiguous with %q (min %d)",
					cat, slab.Label, *slab.MaxUnits, next.Label, next.MinUnits)
			}
		}
	}

	return nil
}

// Table serves validated tariff schedules. The live schedule sits behind an
// atomic pointer so a reload never exposes a half-updated slab set to an
// in-flight estimation.
type Table struct {
	snap atomic.Pointer[Schedule]
}

// NewTable validates the schedule and returns a table serving it
func NewTable(s Schedule) (*Table, error) {
	t := &Table{}
	if err := t.Replace(s); err != nil {
		return nil, err
	}
	return t, nil
}

// NewDefaultTable returns a table serving the built-in NEPRA schedule
func NewDefaultTable() *Table {
	t, err := NewTable(DefaultSchedule())
	if err != nil {
		// The built-in schedule is a compile-time fixture; failing its own
		// validation is a programming error.
		panic(fmt.Sprintf("default tariff schedule invalid: %v", err))
	}
	return t
}

// Replace atomically swaps in a new schedule after validating it.
// On error the previous schedule stays live.
func (t *Table) Replace(s Schedule) error {
	if err := s.Validate(); err != nil {
		return err
	}
	t.snap.Store(&s)
	return nil
}

// RateSlabs returns the ordered slabs for a category. Categories absent
// from the schedule resolve to General so lookups cannot fail mid-request.
func (t *Table) RateSlabs(cat types.ConsumerCategory) []Slab {
	s := *t.snap.Load()
	if slabs, ok := s[cat]; ok {
		return slabs
	}
	return s[types.CategoryGeneral]
}

// BillForUnits computes the progressive bill for a consumption level.
// Each slab fully below the figure is charged at its full width; the slab
// containing the figure is charged only for the partial remainder. Units
// exactly on a boundary belong to the lower slab. Negative units bill as
// zero. The result is rounded to 2 decimals.
func (t *Table) BillForUnits(units float64, cat types.ConsumerCategory) float64 {
	total, _ := t.walk(units, cat, nil)
	return total
}

// Breakdown computes the bill along with its per-slab line items
func (t *Table) Breakdown(units float64, cat types.ConsumerCategory) (float64, []types.BillLine) {
	var lines []types.BillLine
	total, _ := t.walk(units, cat, &lines)
	return total, lines
}

// SlabForUnits returns the slab a unit figure lands in. Figures at or below
// the first slab's upper bound land in the first slab; negative figures are
// treated as zero.
func (t *Table) SlabForUnits(units float64, cat types.ConsumerCategory) types.SlabRef {
	if units < 0 {
		units = 0
	}
	slabs := t.RateSlabs(cat)
	for _, slab := range slabs {
		if slab.Unbounded() || units <= float64(*slab.MaxUnits) {
			return slab.Ref()
		}
	}
	// Unreachable for a validated schedule; the last slab is unbounded.
	return slabs[len(slabs)-1].Ref()
}

// Categories returns the categories the live schedule covers
func (t *Table) Categories() []types.ConsumerCategory {
	s := *t.snap.Load()
	cats := make([]types.ConsumerCategory, 0, len(s))
	for _, c := range []types.ConsumerCategory{types.CategoryLifeline, types.CategoryProtected, types.CategoryGeneral} {
		if _, ok := s[c]; ok {
			cats = append(cats, c)
		}
	}
	return cats
}

// walk performs the progressive accumulation. Money math is decimal end to
// end; the float boundary is crossed only on the way out.
func (t *Table) walk(units float64, cat types.ConsumerCategory, lines *[]types.BillLine) (float64, []Slab) {
	slabs := t.RateSlabs(cat)
	if units <= 0 {
		return 0, slabs
	}

	u := decimal.NewFromFloat(units)
	total := decimal.Zero

	for _, slab := range slabs {
		lower := decimal.NewFromInt(int64(slab.MinUnits - 1))
		if u.LessThanOrEqual(lower) {
			break
		}

		var inSlab decimal.Decimal
		if !slab.Unbounded() {
			upper := decimal.NewFromInt(int64(*slab.MaxUnits))
			if u.GreaterThan(upper) {
				inSlab = upper.Sub(lower)
			} else {
				inSlab = u.Sub(lower)
			}
		} else {
			inSlab = u.Sub(lower)
		}

		amount := inSlab.Mul(slab.Rate)
		total = total.Add(amount)

		if lines != nil {
			*lines = append(*lines, types.BillLine{
				Label:  slab.Label,
				Units:  inSlab.InexactFloat64(),
				Rate:   slab.Rate.InexactFloat64(),
				Amount: amount.Round(2).InexactFloat64(),
			})
		}

		if slab.Unbounded() || u.LessThanOrEqual(decimal.NewFromInt(int64(*slab.MaxUnits))) {
			break
		}
	}

	return total.Round(2).InexactFloat64(), slabs
}
