package mqtt

import (
	"time"

	"github.com/kilianp07/evload/core/events"
	"github.com/kilianp07/evload/core/forecast"
)

// DefaultRecommendationTopic receives the best charging hours of each forecast.
const DefaultRecommendationTopic = "evload/recommendations"

// BestTime is one recommended charging hour.
type BestTime struct {
	Timestamp string  `json:"Timestamp"`
	LoadKW    float64 `json:"Predicted_Load_kW"`
}

// RecommendationMessage is the JSON payload published for chargers.
type RecommendationMessage struct {
	RequestID   string     `json:"request_id"`
	Model       string     `json:"model"`
	StartHour   int        `json:"start_hour"`
	EndHour     int        `json:"end_hour"`
	BestTimes   []BestTime `json:"best_times"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// NewRecommendationMessage builds the payload of a successful forecast event.
func NewRecommendationMessage(ev events.ForecastEvent) RecommendationMessage {
	best := make([]BestTime, len(ev.Best))
	for i, s := range ev.Best {
		best[i] = BestTime{Timestamp: forecast.FormatTimestamp(s.Timestamp), LoadKW: s.LoadKW}
	}
	return RecommendationMessage{
		RequestID:   ev.RequestID,
		Model:       ev.Model,
		StartHour:   ev.StartHour,
		EndHour:     ev.EndHour,
		BestTimes:   best,
		GeneratedAt: ev.Time,
	}
}
