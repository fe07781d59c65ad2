package metrics

import (
	"errors"
	"io"

	"github.com/kilianp07/evload/core/events"
	"github.com/kilianp07/evload/core/prediction"
)

// MetricsSink records forecast outcomes for observability purposes.
type MetricsSink interface {
	RecordForecast(ev events.ForecastEvent) error
}

// ModelInfoRecorder is implemented by sinks able to expose the loaded model.
type ModelInfoRecorder interface {
	RecordModelInfo(info prediction.Info) error
}

// DroppedEventsRecorder is implemented by sinks tracking event bus drops.
type DroppedEventsRecorder interface {
	RecordDroppedEvents(total uint64) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordForecast(events.ForecastEvent) error { return nil }
func (NopSink) RecordModelInfo(prediction.Info) error      { return nil }
func (NopSink) RecordDroppedEvents(uint64) error           { return nil }

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordForecast forwards the event to all sinks, returning the first error
// after every sink had a chance to record.
func (m *MultiSink) RecordForecast(ev events.ForecastEvent) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordForecast(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordModelInfo forwards model metadata when supported by the sink.
func (m *MultiSink) RecordModelInfo(info prediction.Info) error {
	for _, s := range m.Sinks {
		if r, ok := s.(ModelInfoRecorder); ok {
			if err := r.RecordModelInfo(info); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordDroppedEvents forwards the drop counter when supported by the sink.
func (m *MultiSink) RecordDroppedEvents(total uint64) error {
	for _, s := range m.Sinks {
		if r, ok := s.(DroppedEventsRecorder); ok {
			if err := r.RecordDroppedEvents(total); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink holding resources.
func (m *MultiSink) Close() error {
	var errs []error
	for _, s := range m.Sinks {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
