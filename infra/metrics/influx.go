package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/kilianp07/evload/core/events"
	coremetrics "github.com/kilianp07/evload/core/metrics"
	"github.com/kilianp07/evload/infra/logger"
)

// InfluxConfig holds the connection settings of an InfluxSink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes forecast requests to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordForecast writes one forecast_request point and one
// forecast_recommendation point per recommended hour.
func (s *InfluxSink) RecordForecast(ev events.ForecastEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.writeAPI.WritePoint(ctx, forecastPoint(ev)); err != nil {
		return err
	}
	for i, b := range ev.Best {
		p := write.NewPointWithMeasurement("forecast_recommendation").
			AddTag("request_id", ev.RequestID).
			AddTag("model", ev.Model).
			AddField("rank", i+1).
			AddField("predicted_load_kw", round3(b.LoadKW)).
			SetTime(b.Timestamp)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func forecastPoint(ev events.ForecastEvent) *write.Point {
	p := write.NewPointWithMeasurement("forecast_request").
		AddTag("model", ev.Model).
		AddTag("status", ev.Status).
		AddTag("request_id", ev.RequestID).
		AddField("hours", ev.Hours).
		AddField("rows", ev.Rows).
		AddField("start_hour", ev.StartHour).
		AddField("end_hour", ev.EndHour).
		AddField("duration_ms", round3(ev.Duration.Seconds()*1000))
	if ev.OK() && ev.Rows > 0 {
		p = p.AddField("min_load_kw", round3(ev.MinLoadKW)).
			AddField("max_load_kw", round3(ev.MaxLoadKW)).
			AddField("mean_load_kw", round3(ev.MeanLoadKW))
	}
	if ev.Err != nil {
		p = p.AddField("error", ev.Err.Error())
	}
	return p.SetTime(ev.Time)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
