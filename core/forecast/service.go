package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/evload/core/events"
	"github.com/kilianp07/evload/core/logger"
	"github.com/kilianp07/evload/core/monitoring"
	"github.com/kilianp07/evload/core/prediction"
)

// Request is a parsed forecast request.
type Request struct {
	RequestID     string
	LastTimestamp time.Time
	Hours         int
	Window        HourRange
	Overrides     map[string]any
}

// Publisher receives forecast events. eventbus.TypedBus satisfies it.
type Publisher interface {
	Publish(events.ForecastEvent)
}

// Service produces forecasts with a shared, read-only model.
type Service struct {
	model     prediction.Model
	modelName string
	defaults  Defaults
	pub       Publisher
	log       logger.Logger
	now       func() time.Time
}

// NewService builds a Service. pub may be nil; log is required.
func NewService(model prediction.Model, defaults Defaults, pub Publisher, log logger.Logger) (*Service, error) {
	if model == nil {
		return nil, fmt.Errorf("forecast service: model is required")
	}
	if log == nil {
		return nil, fmt.Errorf("forecast service: logger is required")
	}
	return &Service{
		model:     model,
		modelName: prediction.Describe(model).Name,
		defaults:  defaults,
		pub:       pub,
		log:       log,
		now:       time.Now,
	}, nil
}

// Defaults returns the configured feature defaults.
func (s *Service) Defaults() Defaults { return s.defaults }

// Model returns the metadata of the loaded model.
func (s *Service) Model() prediction.Info { return prediction.Describe(s.model) }

// Forecast synthesizes the rows for req, predicts their load and selects the
// recommended hours. The outcome is published whether or not it succeeded.
func (s *Service) Forecast(ctx context.Context, req Request) (Result, error) {
	start := s.now()
	rows, err := Synthesize(req.LastTimestamp, req.Hours, s.defaults, req.Overrides)
	var res Result
	if err == nil {
		res, err = PredictAndRecommend(ctx, rows, s.model, req.Window)
	}
	elapsed := s.now().Sub(start)

	log := s.log.With(map[string]any{"request_id": req.RequestID})
	if err != nil {
		log.Warnf("forecast failed: %v", err)
		if errors.Is(err, ErrModelInference) {
			monitoring.CaptureException(err, map[string]string{
				"component":  "forecast",
				"model":      s.modelName,
				"request_id": req.RequestID,
			})
		}
	} else {
		log.Infow("forecast computed", map[string]any{
			"hours":      req.Hours,
			"start_hour": req.Window.Start,
			"end_hour":   req.Window.End,
			"best":       len(res.Best),
			"min_kw":     res.Summary.MinKW,
			"duration":   elapsed.String(),
		})
	}
	s.publish(req, res, err, elapsed)
	return res, err
}

func (s *Service) publish(req Request, res Result, err error, elapsed time.Duration) {
	if s.pub == nil {
		return
	}
	ev := events.ForecastEvent{
		RequestID:  req.RequestID,
		Model:      s.modelName,
		Status:     Status(err),
		Last:       req.LastTimestamp,
		Hours:      req.Hours,
		StartHour:  req.Window.Start,
		EndHour:    req.Window.End,
		Rows:       len(res.All),
		MinLoadKW:  res.Summary.MinKW,
		MaxLoadKW:  res.Summary.MaxKW,
		MeanLoadKW: res.Summary.MeanKW,
		Duration:   elapsed,
		Err:        err,
		Time:       s.now(),
	}
	if len(res.Best) > 0 {
		ev.Best = make([]events.Slot, len(res.Best))
		for i, b := range res.Best {
			ev.Best[i] = events.Slot{Timestamp: b.Timestamp, LoadKW: b.LoadKW}
		}
	}
	s.pub.Publish(ev)
}
