package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/evload/core/events"
)

func captureServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()
	var mu sync.Mutex
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, strings.TrimSpace(string(b)))
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), bodies...)
	}
}

func TestInfluxSink_RecordForecast(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	slot := now.Add(3 * time.Hour)
	ev := events.ForecastEvent{
		RequestID:  "req-1",
		Model:      "ev-load",
		Status:     "ok",
		Hours:      24,
		Rows:       24,
		StartHour:  0,
		EndHour:    6,
		Best:       []events.Slot{{Timestamp: slot, LoadKW: 7.12345}},
		MinLoadKW:  7.12345,
		MaxLoadKW:  99,
		MeanLoadKW: 50.5,
		Duration:   1500 * time.Microsecond,
		Time:       now,
	}
	if err := sink.RecordForecast(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}

	p := write.NewPointWithMeasurement("forecast_request").
		AddTag("model", "ev-load").
		AddTag("status", "ok").
		AddTag("request_id", "req-1").
		AddField("hours", 24).
		AddField("rows", 24).
		AddField("start_hour", 0).
		AddField("end_hour", 6).
		AddField("duration_ms", 1.5).
		AddField("min_load_kw", 7.123).
		AddField("max_load_kw", 99.0).
		AddField("mean_load_kw", 50.5).
		SetTime(now)
	p2 := write.NewPointWithMeasurement("forecast_recommendation").
		AddTag("request_id", "req-1").
		AddTag("model", "ev-load").
		AddField("rank", 1).
		AddField("predicted_load_kw", 7.123).
		SetTime(slot)
	exp1 := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	exp2 := strings.TrimSpace(write.PointToLineProtocol(p2, time.Nanosecond))
	got := bodies()
	if len(got) != 2 || got[0] != exp1 || got[1] != exp2 {
		t.Errorf("unexpected bodies: %#v", got)
	}
}

func TestInfluxSink_RecordFailedForecast(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "t", Org: "o", Bucket: "b"})
	defer sink.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ev := events.ForecastEvent{
		RequestID: "req-2",
		Model:     "remote",
		Status:    "model_error",
		Hours:     3,
		Rows:      3,
		EndHour:   23,
		Err:       errors.New("timeout"),
		Time:      now,
	}
	if err := sink.RecordForecast(ev); err != nil {
		t.Fatalf("record error: %v", err)
	}
	got := bodies()
	if len(got) != 1 {
		t.Fatalf("expected one point, got %#v", got)
	}
	if strings.Contains(got[0], "mean_load_kw") {
		t.Errorf("failed forecast must not carry load summary: %s", got[0])
	}
	if !strings.Contains(got[0], `error="timeout"`) {
		t.Errorf("missing error field: %s", got[0])
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{
		URL:    srv.URL + "/api/v2/write",
		Token:  "tok",
		Org:    "org",
		Bucket: "bucket",
	})
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
