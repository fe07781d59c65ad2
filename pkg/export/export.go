// Package export renders forecast results for the command line.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/evload/core/forecast"
)

type jsonPrediction struct {
	Timestamp string  `json:"Timestamp"`
	Hour      int     `json:"Hour"`
	LoadKW    float64 `json:"Predicted_Load_kW"`
}

type jsonBest struct {
	Timestamp string  `json:"Timestamp"`
	LoadKW    float64 `json:"Predicted_Load_kW"`
}

type jsonResult struct {
	All     []jsonPrediction `json:"all_predictions"`
	Best    []jsonBest       `json:"best_times"`
	Summary forecast.Summary `json:"summary"`
}

// WriteJSON writes the forecast to w in JSON format.
func WriteJSON(w io.Writer, res forecast.Result) error {
	out := jsonResult{
		All:     make([]jsonPrediction, len(res.All)),
		Best:    make([]jsonBest, len(res.Best)),
		Summary: res.Summary,
	}
	for i, p := range res.All {
		out.All[i] = jsonPrediction{Timestamp: forecast.FormatTimestamp(p.Timestamp), Hour: p.Hour, LoadKW: p.LoadKW}
	}
	for i, b := range res.Best {
		out.Best[i] = jsonBest{Timestamp: forecast.FormatTimestamp(b.Timestamp), LoadKW: b.LoadKW}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteCSV writes one line per forecast hour with every model feature, the
// predicted load and the recommendation rank (empty when not recommended).
func WriteCSV(w io.Writer, res forecast.Result) error {
	cw := csv.NewWriter(w)
	header := append([]string{"Timestamp"}, forecast.Columns()...)
	header = append(header, "Predicted_Load_kW", "Recommended_Rank")
	if err := cw.Write(header); err != nil {
		return err
	}
	rank := make(map[int64]int, len(res.Best))
	for i, b := range res.Best {
		rank[b.Timestamp.UnixNano()] = i + 1
	}
	for _, p := range res.All {
		rec := make([]string, 0, len(header))
		rec = append(rec, forecast.FormatTimestamp(p.Timestamp))
		for _, v := range p.Features() {
			rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
		}
		rec = append(rec, strconv.FormatFloat(p.LoadKW, 'f', -1, 64))
		if r, ok := rank[p.Timestamp.UnixNano()]; ok {
			rec = append(rec, strconv.Itoa(r))
		} else {
			rec = append(rec, "")
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Write dispatches on format ("json" or "csv").
func Write(w io.Writer, format string, res forecast.Result) error {
	switch format {
	case "", "json":
		return WriteJSON(w, res)
	case "csv":
		return WriteCSV(w, res)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
