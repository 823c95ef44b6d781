// Package predictor defines the statistical prediction capability boundary.
// The estimation core owns feature-vector assembly and ordering; a
// capability owns nothing about feature semantics. It consumes an ordered
// float vector and returns one predicted bill scalar, or fails.
package predictor

import (
	"context"

	"bill-optimizer/core/types"
)

// Capability is the opaque statistical predictor the bill estimator calls.
// Implementations must be pure functions of their input vector: synchronous,
// side-effect free, and safe for concurrent use.
type Capability interface {
	// FeatureColumns returns the feature names in the exact order the
	// model expects its input vector
	FeatureColumns() []string

	// Predict scores one feature vector and returns the predicted
	// monthly bill
	Predict(ctx context.Context, vector []float64) (float64, error)

	// Info describes the model behind this capability
	Info() types.ModelInfo
}
