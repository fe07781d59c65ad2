package forecast

import (
	"encoding/json"
	"net/http"

	coreforecast "github.com/kilianp07/evload/core/forecast"
)

type predictionDTO struct {
	Timestamp string  `json:"Timestamp"`
	Hour      int     `json:"Hour"`
	LoadKW    float64 `json:"Predicted_Load_kW"`
}

type bestTimeDTO struct {
	Timestamp string  `json:"Timestamp"`
	LoadKW    float64 `json:"Predicted_Load_kW"`
}

type predictResponse struct {
	AllPredictions []predictionDTO `json:"all_predictions"`
	BestTimes      []bestTimeDTO   `json:"best_times"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newPredictResponse(res coreforecast.Result) predictResponse {
	out := predictResponse{
		AllPredictions: make([]predictionDTO, len(res.All)),
		BestTimes:      make([]bestTimeDTO, len(res.Best)),
	}
	for i, p := range res.All {
		out.AllPredictions[i] = predictionDTO{
			Timestamp: coreforecast.FormatTimestamp(p.Timestamp),
			Hour:      p.Hour,
			LoadKW:    p.LoadKW,
		}
	}
	for i, b := range res.Best {
		out.BestTimes[i] = bestTimeDTO{Timestamp: coreforecast.FormatTimestamp(b.Timestamp), LoadKW: b.LoadKW}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
