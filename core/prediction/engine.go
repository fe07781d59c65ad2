package prediction

import "context"

// Model predicts charging load for a batch of feature rows.
type Model interface {
	// Predict returns one value per row of x, in the same order.
	Predict(ctx context.Context, x [][]float64) ([]float64, error)
}

// Info describes a loaded model artifact.
type Info struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version string `json:"version,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Describer is implemented by models able to report metadata.
type Describer interface {
	Info() Info
}

// Describe returns the model metadata or a placeholder when the model does not
// implement Describer.
func Describe(m Model) Info {
	if d, ok := m.(Describer); ok {
		return d.Info()
	}
	return Info{Name: "unknown", Type: "unknown"}
}
