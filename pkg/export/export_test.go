package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evload/core/forecast"
	"github.com/kilianp07/evload/core/prediction"
)

func sampleResult(t *testing.T) forecast.Result {
	t.Helper()
	last := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows, err := forecast.Synthesize(last, 4, forecast.DefaultValues(), nil)
	require.NoError(t, err)
	model := &prediction.MockModel{Predictions: []float64{9, 3, 5, 1}}
	res, err := forecast.PredictAndRecommend(context.Background(), rows, model, forecast.HourRange{Start: 1, End: 3})
	require.NoError(t, err)
	return res
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult(t)))
	var out jsonResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.All, 4)
	assert.Equal(t, "2024-01-01T01:00:00", out.All[0].Timestamp)
	assert.Equal(t, []jsonBest{
		{Timestamp: "2024-01-01T02:00:00", LoadKW: 3},
		{Timestamp: "2024-01-01T03:00:00", LoadKW: 5},
		{Timestamp: "2024-01-01T01:00:00", LoadKW: 9},
	}, out.Best)
	assert.Equal(t, 1.0, out.Summary.MinKW)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "csv", sampleResult(t)))
	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 5)
	assert.Equal(t, "Timestamp", recs[0][0])
	assert.Equal(t, "Day_of_Week", recs[0][1])
	assert.Equal(t, "Recommended_Rank", recs[0][len(recs[0])-1])
	assert.Len(t, recs[1], forecast.NumFeatures+3)

	last := len(recs[0]) - 1
	assert.Equal(t, "3", recs[1][last])
	assert.Equal(t, "1", recs[2][last])
	assert.Equal(t, "", recs[4][last], "hour 4 is outside the window")
	assert.Equal(t, "1", recs[4][last-1])
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, "xml", forecast.Result{}))
}
