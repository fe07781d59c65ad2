package events

import "time"

// Slot is a recommended charging hour.
type Slot struct {
	Timestamp time.Time `json:"timestamp"`
	LoadKW    float64   `json:"predicted_load_kw"`
}

// ForecastEvent is published after every forecast request. Err is set and
// Best is empty when the request failed.
type ForecastEvent struct {
	RequestID string
	Model     string
	// Status is "ok", "invalid_input", "model_error" or "error".
	Status     string
	Last       time.Time
	Hours      int
	StartHour  int
	EndHour    int
	Rows       int
	Best       []Slot
	MinLoadKW  float64
	MaxLoadKW  float64
	MeanLoadKW float64
	Duration   time.Duration
	Err        error
	Time       time.Time
}

// OK reports whether the forecast succeeded.
func (e ForecastEvent) OK() bool { return e.Err == nil }
