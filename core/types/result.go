// Package types - Estimation result types
package types

// Method identifies which estimation path produced a result
type Method string

const (
	// MethodModel marks a statistically derived result
	MethodModel Method = "model"

	// MethodFallback marks a deterministic, non-statistical result
	MethodFallback Method = "fallback"
)

// SlabRef describes the tariff slab a unit figure lands in
type SlabRef struct {
	// Category is the consumer category the slab belongs to
	Category ConsumerCategory `json:"category"`

	// Label is the human-readable range, e.g. "101-200 units"
	Label string `json:"label"`

	// Rate is the per-unit rate inside the slab
	Rate float64 `json:"rate"`
}

// BillLine is one slab's contribution to a progressive bill
type BillLine struct {
	// Label is the slab range label
	Label string `json:"label"`

	// Units is the quantity billed in this slab
	Units float64 `json:"units"`

	// Rate is the per-unit rate applied
	Rate float64 `json:"rate"`

	// Amount is Units * Rate, rounded to 2 decimals
	Amount float64 `json:"amount"`
}

// ModelInfo describes the capability that scored a request
type ModelInfo struct {
	Name         string  `json:"name"`
	R2Score      float64 `json:"r2_score,omitempty"`
	MAE          float64 `json:"mae,omitempty"`
	FeaturesUsed int     `json:"features_used"`
	TrainingDate string  `json:"training_date,omitempty"`
}

// EstimationResult is the fully populated outcome of one estimate call.
// Every call path terminates in one; callers never see a partial result or
// a raw error from the estimation path.
type EstimationResult struct {
	// PredictedBill is the estimated monthly bill, >= 0
	PredictedBill float64 `json:"predicted_bill"`

	// EstimatedUnits is the reconciled monthly consumption, >= 0
	EstimatedUnits float64 `json:"estimated_units"`

	// TariffSlab is the slab the estimated units land in
	TariffSlab SlabRef `json:"tariff_slab"`

	// Breakdown lists the per-slab composition of PredictedBill
	Breakdown []BillLine `json:"breakdown,omitempty"`

	// OptimizationTips are ordered, deterministic advice strings
	OptimizationTips []string `json:"optimization_tips"`

	// SavingsOpportunities are ordered currency-delta statements
	SavingsOpportunities []string `json:"savings_opportunities"`

	// Confidence is in [0, 1]
	Confidence float64 `json:"confidence"`

	// Method tags the path that produced this result
	Method Method `json:"method"`

	// Model describes the scoring capability, when one was used
	Model *ModelInfo `json:"model_info,omitempty"`
}
