// Package predictor - Artifact-backed linear model
package predictor

import (
	"context"
	"encoding/json"
	"os"

	"bill-optimizer/core/types"
	"bill-optimizer/internal/errors"
)

// Artifact is the JSON export of the offline training pipeline: a
// standard-scaled linear model (the training run's ridge-regression branch)
// plus the feature ordering and held-out performance figures.
type Artifact struct {
	ModelName      string    `json:"model_name"`
	FeatureColumns []string  `json:"feature_columns"`
	ScalerMean     []float64 `json:"scaler_mean"`
	ScalerScale    []float64 `json:"scaler_scale"`
	Coefficients   []float64 `json:"coefficients"`
	Intercept      float64   `json:"intercept"`
	Performance    struct {
		R2Score float64 `json:"r2_score"`
		MAE     float64 `json:"mae"`
	} `json:"performance"`
	TrainingDate string `json:"training_date"`
}

// LinearModel is a Capability backed by a training artifact. Scoring is
// standardize-then-dot-product; it allocates nothing and cannot block.
type LinearModel struct {
	artifact Artifact
}

// LoadLinearModel reads and validates a model artifact from disk
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Model("failed to read model artifact", err).WithContext("path", path)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, errors.Model("failed to parse model artifact", err).WithContext("path", path)
	}

	return NewLinearModel(artifact)
}

// NewLinearModel validates artifact dimensions and wraps it as a capability
func NewLinearModel(artifact Artifact) (*LinearModel, error) {
	n := len(artifact.FeatureColumns)
	if n == 0 {
		return nil, errors.New(errors.TypeModel, "model artifact declares no feature columns")
	}
	if len(artifact.Coefficients) != n || len(artifact.ScalerMean) != n || len(artifact.ScalerScale) != n {
		return nil, errors.Newf(errors.TypeModel,
			"model artifact dimension mismatch: %d columns, %d coefficients, %d scaler means, %d scaler scales",
			n, len(artifact.Coefficients), len(artifact.ScalerMean), len(artifact.ScalerScale))
	}
	for i, s := range artifact.ScalerScale {
		if s == 0 {
			return nil, errors.Newf(errors.TypeModel,
				"model artifact has zero scaler scale for %s", artifact.FeatureColumns[i])
		}
	}

	return &LinearModel{artifact: artifact}, nil
}

// FeatureColumns returns the model's expected vector ordering
func (m *LinearModel) FeatureColumns() []string {
	return m.artifact.FeatureColumns
}

// Predict standardizes the vector and applies the linear form
func (m *LinearModel) Predict(_ context.Context, vector []float64) (float64, error) {
	if len(vector) != len(m.artifact.FeatureColumns) {
		return 0, errors.Newf(errors.TypeModel,
			"feature vector length %d does not match model's %d columns",
			len(vector), len(m.artifact.FeatureColumns))
	}

	sum := m.artifact.Intercept
	for i, v := range vector {
		scaled := (v - m.artifact.ScalerMean[i]) / m.artifact.ScalerScale[i]
		sum += scaled * m.artifact.Coefficients[i]
	}
	return sum, nil
}

// Info describes the model
func (m *LinearModel) Info() types.ModelInfo {
	return types.ModelInfo{
		Name:         m.artifact.ModelName,
		R2Score:      m.artifact.Performance.R2Score,
		MAE:          m.artifact.Performance.MAE,
		FeaturesUsed: len(m.artifact.FeatureColumns),
		TrainingDate: m.artifact.TrainingDate,
	}
}
