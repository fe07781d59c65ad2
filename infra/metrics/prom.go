package metrics

import (
	"errors"
	"fmt"

	"github.com/kilianp07/evload/core/events"
	coremetrics "github.com/kilianp07/evload/core/metrics"
	"github.com/kilianp07/evload/core/prediction"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records forecast requests in Prometheus metrics.
type PromSink struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	predicted prometheus.Histogram
	bestHour  *prometheus.CounterVec
	model     *prometheus.GaugeVec
	dropped   prometheus.Gauge
}

// NewPromSink registers forecast metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already present on the registerer are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_requests_total",
		Help: "Total number of forecast requests by outcome",
	}, []string{"status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "forecast_duration_seconds",
		Help:    "Time spent synthesizing features and running inference",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	predicted := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "forecast_predicted_load_kw",
		Help:    "Mean predicted charging load per successful forecast",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})
	bestHour := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_recommended_hours_total",
		Help: "Number of times each hour of day was recommended",
	}, []string{"hour"})
	model := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "forecast_model_info",
		Help: "Loaded prediction model",
	}, []string{"name", "type", "version"})
	dropped := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "forecast_events_dropped",
		Help: "Forecast events dropped by the event bus since start",
	})

	var err error
	if requests, err = register(reg, requests); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if predicted, err = register(reg, predicted); err != nil {
		return nil, err
	}
	if bestHour, err = register(reg, bestHour); err != nil {
		return nil, err
	}
	if model, err = register(reg, model); err != nil {
		return nil, err
	}
	if dropped, err = register(reg, dropped); err != nil {
		return nil, err
	}

	return &PromSink{
		requests:  requests,
		duration:  duration,
		predicted: predicted,
		bestHour:  bestHour,
		model:     model,
		dropped:   dropped,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordForecast updates the request counters and, on success, the load and
// recommendation metrics.
func (s *PromSink) RecordForecast(ev events.ForecastEvent) error {
	s.requests.WithLabelValues(ev.Status).Inc()
	s.duration.WithLabelValues(ev.Status).Observe(ev.Duration.Seconds())
	if !ev.OK() || ev.Rows == 0 {
		return nil
	}
	s.predicted.Observe(ev.MeanLoadKW)
	for _, b := range ev.Best {
		s.bestHour.WithLabelValues(hourLabel(b.Timestamp.Hour())).Inc()
	}
	return nil
}

// RecordModelInfo exposes the loaded model as an info gauge.
func (s *PromSink) RecordModelInfo(info prediction.Info) error {
	s.model.Reset()
	s.model.WithLabelValues(info.Name, info.Type, info.Version).Set(1)
	return nil
}

// RecordDroppedEvents sets the drop gauge to the bus counter.
func (s *PromSink) RecordDroppedEvents(total uint64) error {
	s.dropped.Set(float64(total))
	return nil
}

func hourLabel(h int) string { return fmt.Sprintf("%02d", h) }
