package prediction

import (
	"context"
	"sync"
)

// ConstantModel predicts the same load for every row.
type ConstantModel struct {
	Value float64
}

// Predict returns Value for each row.
func (c ConstantModel) Predict(_ context.Context, x [][]float64) ([]float64, error) {
	out := make([]float64, len(x))
	for i := range out {
		out[i] = c.Value
	}
	return out, nil
}

// Info reports the constant model metadata.
func (c ConstantModel) Info() Info { return Info{Name: "constant", Type: "constant"} }

// MockModel returns scripted predictions and records the tables it received.
type MockModel struct {
	// Predictions is returned as-is (copied) when Fn is nil.
	Predictions []float64
	// Fn computes the predictions from the input when set.
	Fn func(x [][]float64) ([]float64, error)
	// Err is returned instead of predictions when non-nil.
	Err error

	mu    sync.Mutex
	calls [][][]float64
}

// Predict records x and returns the configured result.
func (m *MockModel) Predict(_ context.Context, x [][]float64) ([]float64, error) {
	m.mu.Lock()
	m.calls = append(m.calls, x)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Fn != nil {
		return m.Fn(x)
	}
	cp := make([]float64, len(m.Predictions))
	copy(cp, m.Predictions)
	return cp, nil
}

// Calls returns the feature tables received so far.
func (m *MockModel) Calls() [][][]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][][]float64, len(m.calls))
	copy(out, m.calls)
	return out
}

// Info reports the mock model metadata.
func (m *MockModel) Info() Info { return Info{Name: "mock", Type: "mock"} }
