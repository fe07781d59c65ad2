package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kilianp07/evload/core/events"
	"github.com/kilianp07/evload/core/factory"
	coremetrics "github.com/kilianp07/evload/core/metrics"
	"github.com/kilianp07/evload/core/prediction"
)

func newTestPromSink(t *testing.T, reg prometheus.Registerer) *PromSink {
	t.Helper()
	sinkIf, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink, got %T", sinkIf)
	}
	return sink
}

func TestPromSink_RecordForecast(t *testing.T) {
	sink := newTestPromSink(t, prometheus.NewRegistry())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ok := events.ForecastEvent{
		Status:     "ok",
		Rows:       24,
		MeanLoadKW: 42,
		Duration:   20 * time.Millisecond,
		Best: []events.Slot{
			{Timestamp: base.Add(3 * time.Hour), LoadKW: 7},
			{Timestamp: base.Add(5 * time.Hour), LoadKW: 7},
		},
	}
	failed := events.ForecastEvent{Status: "model_error", Err: errors.New("boom")}
	if err := sink.RecordForecast(ok); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.RecordForecast(ok); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := sink.RecordForecast(failed); err != nil {
		t.Fatalf("record: %v", err)
	}

	expected := `
# HELP forecast_requests_total Total number of forecast requests by outcome
# TYPE forecast_requests_total counter
forecast_requests_total{status="model_error"} 1
forecast_requests_total{status="ok"} 2
`
	if err := testutil.CollectAndCompare(sink.requests, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	expectedHours := `
# HELP forecast_recommended_hours_total Number of times each hour of day was recommended
# TYPE forecast_recommended_hours_total counter
forecast_recommended_hours_total{hour="03"} 2
forecast_recommended_hours_total{hour="05"} 2
`
	if err := testutil.CollectAndCompare(sink.bestHour, strings.NewReader(expectedHours)); err != nil {
		t.Errorf("unexpected hour metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.duration); c != 2 {
		t.Errorf("expected duration series per status, got %d", c)
	}
	if c := testutil.CollectAndCount(sink.predicted); c != 1 {
		t.Errorf("predicted load not recorded")
	}
}

func TestPromSink_ModelInfoAndDrops(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := newTestPromSink(t, reg)
	_ = sink.RecordModelInfo(prediction.Info{Name: "old", Type: "linear", Version: "1"})
	_ = sink.RecordModelInfo(prediction.Info{Name: "ev-load", Type: "linear", Version: "2"})
	expected := `
# HELP forecast_model_info Loaded prediction model
# TYPE forecast_model_info gauge
forecast_model_info{name="ev-load",type="linear",version="2"} 1
`
	if err := testutil.CollectAndCompare(sink.model, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected model info: %v", err)
	}
	_ = sink.RecordDroppedEvents(5)
	if v := testutil.ToFloat64(sink.dropped); v != 5 {
		t.Errorf("dropped gauge = %v", v)
	}
	if n, err := testutil.GatherAndCount(reg, "forecast_events_dropped"); err != nil || n != 1 {
		t.Errorf("forecast_events_dropped series = %d, err %v", n, err)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := newTestPromSink(t, reg)
	second := newTestPromSink(t, reg)
	_ = first.RecordForecast(events.ForecastEvent{Status: "ok"})
	_ = second.RecordForecast(events.ForecastEvent{Status: "ok"})
	if v := testutil.ToFloat64(first.requests.WithLabelValues("ok")); v != 2 {
		t.Fatalf("expected shared counter, got %v", v)
	}
}

func TestPrometheusSinkFromFactory(t *testing.T) {
	for i := 0; i < 2; i++ {
		sink, err := coremetrics.NewMetricsSink([]factory.ModuleConfig{{Type: "prometheus"}})
		if err != nil {
			t.Fatalf("create sink %d: %v", i, err)
		}
		if _, ok := sink.(*PromSink); !ok {
			t.Fatalf("expected *PromSink, got %T", sink)
		}
	}
}
