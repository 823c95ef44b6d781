// Package tariff - HCL schedule loading
package tariff

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"bill-optimizer/core/types"
	"bill-optimizer/internal/errors"
)

// scheduleFile is the top-level HCL document
type scheduleFile struct {
	Categories []categoryBlock `hcl:"category,block"`
}

// categoryBlock is one labeled category block
type categoryBlock struct {
	Name  string      `hcl:"name,label"`
	Slabs []slabBlock `hcl:"slab,block"`
}

// slabBlock is one slab definition
type slabBlock struct {
	Min   int     `hcl:"min"`
	Max   *int    `hcl:"max,optional"`
	Rate  float64 `hcl:"rate"`
	Label string  `hcl:"label,optional"`
}

// LoadSchedule reads and validates a tariff schedule from an HCL file.
// Example document:
//
//	category "General" {
//	  slab {
//	    min  = 1
//	    max  = 100
//	    rate = 16.48
//	  }
//	  slab {
//	    min  = 101
//	    rate = 22.95
//	  }
//	}
func LoadSchedule(path string) (Schedule, error) {
	var file scheduleFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "failed to decode tariff schedule", err).
			WithContext("path", path)
	}

	schedule := make(Schedule, len(file.Categories))
	for _, cb := range file.Categories {
		cat, ok := knownCategory(cb.Name)
		if !ok {
			return nil, errors.Newf(errors.TypeConfig, "unknown consumer category %q", cb.Name).
				WithContext("path", path)
		}
		if _, dup := schedule[cat]; dup {
			return nil, errors.Newf(errors.TypeConfig, "duplicate category block %q", cb.Name)
		}

		slabs := make([]Slab, len(cb.Slabs))
		for i, sb := range cb.Slabs {
			label := sb.Label
			if label == "" {
				label = rangeLabel(sb.Min, sb.Max)
			}
			slabs[i] = Slab{
				Category: cat,
				MinUnits: sb.Min,
				MaxUnits: sb.Max,
				Rate:     decimal.NewFromFloat(sb.Rate),
				Label:    label,
			}
		}
		schedule[cat] = slabs
	}

	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	return schedule, nil
}

// knownCategory resolves a config-file category name strictly: unlike
// request handling, a typo in configuration must fail loudly.
func knownCategory(name string) (types.ConsumerCategory, bool) {
	switch name {
	case string(types.CategoryLifeline):
		return types.CategoryLifeline, true
	case string(types.CategoryProtected):
		return types.CategoryProtected, true
	case string(types.CategoryGeneral):
		return types.CategoryGeneral, true
	default:
		return "", false
	}
}
