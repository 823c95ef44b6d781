// Package types - Shared estimation types
package types

import "strings"

// ConsumerCategory is a NEPRA consumer category
type ConsumerCategory string

const (
	CategoryLifeline  ConsumerCategory = "Lifeline"
	CategoryProtected ConsumerCategory = "Protected"
	CategoryGeneral   ConsumerCategory = "General"
)

// String returns the string representation
func (c ConsumerCategory) String() string {
	return string(c)
}

// ParseCategory resolves a category name, ignoring case, falling back to
// General for anything unrecognized so downstream lookups cannot fail.
func ParseCategory(s string) ConsumerCategory {
	switch {
	case strings.EqualFold(s, string(CategoryLifeline)):
		return CategoryLifeline
	case strings.EqualFold(s, string(CategoryProtected)):
		return CategoryProtected
	default:
		return CategoryGeneral
	}
}

// RawUserInput is the caller-supplied description of a household.
// All numeric fields carry declared inclusive ranges; the estimation core
// clamps out-of-range values rather than rejecting them. Hard rejection is
// the API boundary's job.
type RawUserInput struct {
	HouseholdSize int     `json:"household_size"`
	NumAppliances int     `json:"num_appliances"`
	ACUnits       int     `json:"ac_units"`
	FridgeCount   int     `json:"fridge_count"`
	FanCount      int     `json:"fan_count"`
	UsageHours    float64 `json:"usage_hours"`
	PreviousUnits float64 `json:"previous_units"`
	Region        string  `json:"region"`
	ConsumerType  string  `json:"consumer_type"`
}

// FieldRange is an inclusive numeric range
type FieldRange struct {
	Min float64
	Max float64
}

// BoundaryRanges are the acceptance ranges the API boundary enforces with
// hard rejection. The core's internal clamps are tighter for some fields.
var BoundaryRanges = map[string]FieldRange{
	"household_size": {1, 15},
	"num_appliances": {1, 50},
	"ac_units":       {0, 10},
	"fridge_count":   {0, 5},
	"fan_count":      {0, 20},
	"usage_hours":    {1, 24},
	"previous_units": {0, 5000},
}

// Clamped returns a copy of the input with every field forced into the
// core's working ranges. The estimation path operates only on clamped
// values, which is what makes the deterministic fallback total.
func (in RawUserInput) Clamped() RawUserInput {
	out := in
	out.HouseholdSize = clampInt(in.HouseholdSize, 1, 15)
	out.NumAppliances = clampInt(in.NumAppliances, 1, 50)
	out.ACUnits = clampInt(in.ACUnits, 0, 5)
	out.FridgeCount = clampInt(in.FridgeCount, 0, 3)
	out.FanCount = clampInt(in.FanCount, 0, 10)
	out.UsageHours = clampFloat(in.UsageHours, 1, 24)
	out.PreviousUnits = clampFloat(in.PreviousUnits, 0, 5000)
	return out
}

// Category returns the parsed consumer category
func (in RawUserInput) Category() ConsumerCategory {
	return ParseCategory(in.ConsumerType)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
