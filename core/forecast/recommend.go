package forecast

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/evload/core/prediction"
)

// BestCount is the maximum number of recommended hours.
const BestCount = 3

// HourRange is an inclusive hour-of-day window. A range with Start > End
// matches nothing.
type HourRange struct {
	Start int `json:"start_hour"`
	End   int `json:"end_hour"`
}

// Contains reports whether hour lies within the window.
func (h HourRange) Contains(hour int) bool {
	return h.Start <= hour && hour <= h.End
}

// Prediction is a Row with its predicted charging load.
type Prediction struct {
	Row
	LoadKW float64 `json:"Predicted_Load_kW"`
}

// Recommendation is the narrow projection returned for the best hours.
type Recommendation struct {
	Timestamp time.Time `json:"Timestamp"`
	LoadKW    float64   `json:"Predicted_Load_kW"`
}

// Summary aggregates the predicted loads of a forecast.
type Summary struct {
	MinKW  float64 `json:"min_kw"`
	MaxKW  float64 `json:"max_kw"`
	MeanKW float64 `json:"mean_kw"`
}

// Result is the outcome of one forecast.
type Result struct {
	// All holds every synthesized hour in chronological order.
	All []Prediction `json:"all_predictions"`
	// Best holds at most BestCount hours, lowest load first.
	Best    []Recommendation `json:"best_times"`
	Summary Summary          `json:"summary"`
}

// PredictAndRecommend runs the model over rows in a single batch and selects
// the lowest-load hours within window. Ties keep chronological order.
func PredictAndRecommend(ctx context.Context, rows []Row, model prediction.Model, window HourRange) (Result, error) {
	if model == nil {
		return Result{}, fmt.Errorf("%w: no model loaded", ErrModelInference)
	}
	if len(rows) == 0 {
		return Result{All: []Prediction{}, Best: []Recommendation{}}, nil
	}
	loads, err := model.Predict(ctx, FeatureTable(rows))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrModelInference, err)
	}
	if len(loads) != len(rows) {
		return Result{}, fmt.Errorf("%w: model returned %d predictions for %d rows", ErrModelInference, len(loads), len(rows))
	}
	for i, v := range loads {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: non-finite prediction %v at row %d", ErrModelInference, v, i)
		}
	}

	all := make([]Prediction, len(rows))
	for i, r := range rows {
		all[i] = Prediction{Row: r, LoadKW: loads[i]}
	}
	return Result{
		All:     all,
		Best:    Recommend(all, window, BestCount),
		Summary: Summarize(loads),
	}, nil
}

// Recommend returns up to n predictions inside window ordered by ascending
// load. The sort is stable so equal loads stay in chronological order.
func Recommend(all []Prediction, window HourRange, n int) []Recommendation {
	candidates := make([]Prediction, 0, len(all))
	for _, p := range all {
		if window.Contains(p.Hour) {
			candidates = append(candidates, p)
		}
	}
	slices.SortStableFunc(candidates, func(a, b Prediction) int {
		switch {
		case a.LoadKW < b.LoadKW:
			return -1
		case a.LoadKW > b.LoadKW:
			return 1
		default:
			return 0
		}
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	best := make([]Recommendation, len(candidates))
	for i, p := range candidates {
		best[i] = Recommendation{Timestamp: p.Timestamp, LoadKW: p.LoadKW}
	}
	return best
}

// Summarize returns min, max and mean of loads.
func Summarize(loads []float64) Summary {
	if len(loads) == 0 {
		return Summary{}
	}
	return Summary{
		MinKW:  floats.Min(loads),
		MaxKW:  floats.Max(loads),
		MeanKW: stat.Mean(loads, nil),
	}
}
