// Package api - API types for bill estimation
// These types define the contract for the estimation endpoints.
// The API is stateless, idempotent, and deterministic.
package api

import (
	"fmt"

	"bill-optimizer/core/types"
	"bill-optimizer/internal/errors"
)

// EstimateRequest is the input to POST /estimate
type EstimateRequest struct {
	types.RawUserInput
}

// EstimateResponse is the output of POST /estimate
type EstimateResponse struct {
	types.EstimationResult

	// RequestID identifies this estimation
	RequestID string `json:"request_id"`

	// InputSummary echoes the effective request
	InputSummary InputSummary `json:"input_summary"`

	// DurationMs is server-side processing time
	DurationMs int64 `json:"duration_ms"`
}

// InputSummary is the caller-facing echo of the estimation input
type InputSummary struct {
	HouseholdSize       int    `json:"household_size"`
	TotalAppliances     int    `json:"total_appliances"`
	ACUnits             int    `json:"ac_units"`
	PreviousConsumption string `json:"previous_consumption"`
	ConsumerCategory    string `json:"consumer_category"`
	UsageHours          string `json:"usage_hours"`
}

// UnitsRequest is the input to POST /units
type UnitsRequest struct {
	// Appliances maps appliance key to hours per day
	Appliances map[string]float64 `json:"appliances"`

	// ConsumerType selects the billing category; defaults to General
	ConsumerType string `json:"consumer_type,omitempty"`
}

// UnitsResponse is the output of POST /units
type UnitsResponse struct {
	// TotalUnits is the estimated monthly consumption
	TotalUnits float64 `json:"total_units"`

	// DailyUnits is TotalUnits / 30
	DailyUnits float64 `json:"daily_units"`

	// EstimatedMonthlyBill prices the units at the requested category
	EstimatedMonthlyBill float64 `json:"estimated_monthly_bill"`

	// Breakdown lists the per-slab composition of the bill
	Breakdown []types.BillLine `json:"breakdown,omitempty"`

	// ApplianceCount is how many entries the request carried
	ApplianceCount int `json:"appliance_count"`
}

// TariffSlabInfo is one slab in the tariff info payload
type TariffSlabInfo struct {
	Range      string  `json:"range"`
	Rate       float64 `json:"rate"`
	SavingsTip string  `json:"savings_tip,omitempty"`
}

// TariffCategoryInfo groups a category's slabs
type TariffCategoryInfo struct {
	Description string           `json:"description"`
	Slabs       []TariffSlabInfo `json:"slabs"`
}

// validateEstimateRequest enforces the boundary acceptance ranges with hard
// rejection. The estimation core clamps instead; rejection is strictly an
// API concern.
func validateEstimateRequest(req *EstimateRequest) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"household_size", float64(req.HouseholdSize)},
		{"num_appliances", float64(req.NumAppliances)},
		{"ac_units", float64(req.ACUnits)},
		{"fridge_count", float64(req.FridgeCount)},
		{"fan_count", float64(req.FanCount)},
		{"usage_hours", req.UsageHours},
		{"previous_units", req.PreviousUnits},
	}

	var violations []string
	for _, f := range fields {
		r := types.BoundaryRanges[f.name]
		if f.value < r.Min || f.value > r.Max {
			violations = append(violations,
				fmt.Sprintf("%s should be between %v and %v", f.name, r.Min, r.Max))
		}
	}
	if len(violations) > 0 {
		return errors.Validation("invalid input values").WithContext("details", violations)
	}
	return nil
}

// validateUnitsRequest requires a non-empty appliance map
func validateUnitsRequest(req *UnitsRequest) error {
	if len(req.Appliances) == 0 {
		return errors.Validation("missing appliances data")
	}
	for key, hours := range req.Appliances {
		if hours < 0 || hours > 24 {
			return errors.Validation(
				fmt.Sprintf("appliance %q hours should be between 0 and 24", key))
		}
	}
	return nil
}
