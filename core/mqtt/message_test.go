package mqtt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/evload/core/events"
)

func TestNewRecommendationMessage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ev := events.ForecastEvent{
		RequestID: "r1",
		Model:     "ev-load",
		StartHour: 0,
		EndHour:   6,
		Best: []events.Slot{
			{Timestamp: base.Add(3 * time.Hour), LoadKW: 7},
			{Timestamp: base.Add(5 * time.Hour), LoadKW: 7.5},
		},
		Time: base,
	}
	msg := NewRecommendationMessage(ev)
	assert.Equal(t, "r1", msg.RequestID)
	assert.Equal(t, []BestTime{
		{Timestamp: "2024-01-01T03:00:00", LoadKW: 7},
		{Timestamp: "2024-01-01T05:00:00", LoadKW: 7.5},
	}, msg.BestTimes)
	assert.Equal(t, 6, msg.EndHour)
}

func TestNewRecommendationMessage_Empty(t *testing.T) {
	msg := NewRecommendationMessage(events.ForecastEvent{RequestID: "r2"})
	assert.NotNil(t, msg.BestTimes)
	assert.Empty(t, msg.BestTimes)
}
