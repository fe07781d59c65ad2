package forecast

import "errors"

var (
	// ErrInvalidInput is returned for malformed requests: unparseable
	// timestamps, non-positive horizons or undecodable overrides.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelInference is returned when the model fails or returns output
	// inconsistent with the submitted rows.
	ErrModelInference = errors.New("model inference failed")
)

// Status classifies err for metrics labels and logs.
func Status(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrModelInference):
		return "model_error"
	default:
		return "error"
	}
}
