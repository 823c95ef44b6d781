package predictor

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"bill-optimizer/internal/errors"
)

func testArtifact() Artifact {
	a := Artifact{
		ModelName:      "Ridge Regression",
		FeatureColumns: []string{"avg_daily_kwh", "ac_usage_percentage"},
		ScalerMean:     []float64{15, 25},
		ScalerScale:    []float64{5, 10},
		Coefficients:   []float64{1200, 300},
		Intercept:      4000,
		TrainingDate:   "2024-03-01",
	}
	a.Performance.R2Score = 0.87
	a.Performance.MAE = 412.5
	return a
}

// TestLinearModelPredict pins the standardize-then-dot-product form
func TestLinearModelPredict(t *testing.T) {
	m, err := NewLinearModel(testArtifact())
	if err != nil {
		t.Fatalf("NewLinearModel failed: %v", err)
	}

	// scaled = [(20-15)/5, (35-25)/10] = [1, 1]
	// prediction = 4000 + 1200 + 300 = 5500
	got, err := m.Predict(context.Background(), []float64{20, 35})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if math.Abs(got-5500) > 1e-9 {
		t.Errorf("expected 5500, got %v", got)
	}
}

// TestLinearModelRejectsWrongVectorLength proves dimension checking
func TestLinearModelRejectsWrongVectorLength(t *testing.T) {
	m, err := NewLinearModel(testArtifact())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.Predict(context.Background(), []float64{20}); err == nil {
		t.Fatal("expected error for short vector")
	}
}

// TestNewLinearModelRejectsDimensionMismatch proves load-time validation
func TestNewLinearModelRejectsDimensionMismatch(t *testing.T) {
	a := testArtifact()
	a.Coefficients = a.Coefficients[:1]

	_, err := NewLinearModel(a)
	if err == nil {
		t.Fatal("expected error for mismatched coefficient count")
	}
	if !errors.IsType(err, errors.TypeModel) {
		t.Errorf("expected MODEL_ERROR, got %v", err)
	}
}

// TestNewLinearModelRejectsZeroScale proves a degenerate scaler is fatal
func TestNewLinearModelRejectsZeroScale(t *testing.T) {
	a := testArtifact()
	a.ScalerScale[1] = 0

	if _, err := NewLinearModel(a); err == nil {
		t.Fatal("expected error for zero scaler scale")
	}
}

// TestLoadLinearModelFromDisk proves the artifact round-trips through JSON
func TestLoadLinearModelFromDisk(t *testing.T) {
	doc := `{
  "model_name": "Ridge Regression",
  "feature_columns": ["avg_daily_kwh"],
  "scaler_mean": [15],
  "scaler_scale": [5],
  "coefficients": [1000],
  "intercept": 2500,
  "performance": {"r2_score": 0.8, "mae": 500},
  "training_date": "2024-03-01"
}`
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadLinearModel(path)
	if err != nil {
		t.Fatalf("LoadLinearModel failed: %v", err)
	}
	if got := m.Info(); got.Name != "Ridge Regression" || got.FeaturesUsed != 1 {
		t.Errorf("unexpected model info: %+v", got)
	}

	// (15-15)/5 = 0 -> intercept alone
	pred, err := m.Predict(context.Background(), []float64{15})
	if err != nil {
		t.Fatal(err)
	}
	if pred != 2500 {
		t.Errorf("expected 2500, got %v", pred)
	}
}

// TestLoadLinearModelMissingFile proves a typed error surfaces
func TestLoadLinearModelMissingFile(t *testing.T) {
	_, err := LoadLinearModel(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing artifact")
	}
	if !errors.IsType(err, errors.TypeModel) {
		t.Errorf("expected MODEL_ERROR, got %v", err)
	}
}
