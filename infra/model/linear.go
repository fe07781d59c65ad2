package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/kilianp07/evload/core/forecast"
	"github.com/kilianp07/evload/core/prediction"
)

// ErrArtifact is returned when a model artifact cannot be loaded.
var ErrArtifact = errors.New("invalid model artifact")

// LinearArtifact is the serialized form of a linear load model.
type LinearArtifact struct {
	Name         string    `json:"name" yaml:"name"`
	Version      string    `json:"version" yaml:"version"`
	Columns      []string  `json:"columns" yaml:"columns"`
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
}

// Validate checks the artifact against the feature schema.
func (a LinearArtifact) Validate() error {
	if len(a.Coefficients) != forecast.NumFeatures {
		return fmt.Errorf("%w: expected %d coefficients, got %d", ErrArtifact, forecast.NumFeatures, len(a.Coefficients))
	}
	if len(a.Columns) == 0 {
		return nil
	}
	if len(a.Columns) != forecast.NumFeatures {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrArtifact, forecast.NumFeatures, len(a.Columns))
	}
	for i, c := range a.Columns {
		if c != forecast.FeatureColumns[i] {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrArtifact, i, c, forecast.FeatureColumns[i])
		}
	}
	return nil
}

// LinearModel evaluates X·β + b. It is immutable after construction and safe
// for concurrent use.
type LinearModel struct {
	info      prediction.Info
	intercept float64
	beta      *mat.VecDense
}

// NewLinearModel builds a model from a validated artifact.
func NewLinearModel(a LinearArtifact, source string) (*LinearModel, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	coef := make([]float64, len(a.Coefficients))
	copy(coef, a.Coefficients)
	name := a.Name
	if name == "" {
		name = "linear"
	}
	return &LinearModel{
		info:      prediction.Info{Name: name, Type: "linear", Version: a.Version, Source: source},
		intercept: a.Intercept,
		beta:      mat.NewVecDense(len(coef), coef),
	}, nil
}

// LoadLinear reads an artifact file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func LoadLinear(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	var a LinearArtifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &a)
	default:
		err = json.Unmarshal(data, &a)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrArtifact, path, err)
	}
	return NewLinearModel(a, path)
}

// Predict implements prediction.Model.
func (m *LinearModel) Predict(ctx context.Context, x [][]float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(x) == 0 {
		return []float64{}, nil
	}
	width := m.beta.Len()
	flat := make([]float64, 0, len(x)*width)
	for i, row := range x {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d features, want %d", i, len(row), width)
		}
		flat = append(flat, row...)
	}
	X := mat.NewDense(len(x), width, flat)
	var y mat.VecDense
	y.MulVec(X, m.beta)
	out := make([]float64, len(x))
	for i := range out {
		out[i] = y.AtVec(i) + m.intercept
	}
	return out, nil
}

// Info implements prediction.Describer.
func (m *LinearModel) Info() prediction.Info { return m.info }
