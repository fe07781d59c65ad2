package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	apiforecast "github.com/kilianp07/evload/api/forecast"
	"github.com/kilianp07/evload/config"
	"github.com/kilianp07/evload/core/events"
	"github.com/kilianp07/evload/core/forecast"
	coremetrics "github.com/kilianp07/evload/core/metrics"
	coremon "github.com/kilianp07/evload/core/monitoring"
	"github.com/kilianp07/evload/core/prediction"
	"github.com/kilianp07/evload/infra/logger"
	"github.com/kilianp07/evload/infra/metrics"
	_ "github.com/kilianp07/evload/infra/model"
	"github.com/kilianp07/evload/infra/monitoring"
	"github.com/kilianp07/evload/infra/mqtt"
	"github.com/kilianp07/evload/internal/eventbus"
)

// Service wires the forecast service to its HTTP surface, metrics sinks and
// recommendation publisher.
type Service struct {
	Forecast *forecast.Service

	cfg    *config.Config
	bus    *eventbus.TypedBus[events.ForecastEvent]
	sink   coremetrics.MetricsSink
	mqtt   *mqtt.PahoClient
	server *http.Server
	log    logger.Logger
}

// LoadModel instantiates the configured prediction model.
func LoadModel(cfg *config.Config) (prediction.Model, error) {
	m, err := prediction.NewModel(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return m, nil
}

// NewForecaster builds a forecast service without event publishing, for
// one-shot use.
func NewForecaster(cfg *config.Config) (*forecast.Service, error) {
	m, err := LoadModel(cfg)
	if err != nil {
		return nil, err
	}
	return forecast.NewService(m, cfg.Features.Defaults, nil, logger.New("forecast"))
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	model, err := LoadModel(cfg)
	if err != nil {
		return nil, err
	}
	info := prediction.Describe(model)
	logg.Infow("model loaded", map[string]any{"name": info.Name, "type": info.Type, "version": info.Version, "source": info.Source})

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	if r, ok := sink.(coremetrics.ModelInfoRecorder); ok {
		if err := r.RecordModelInfo(info); err != nil {
			logg.Warnf("record model info: %v", err)
		}
	}

	bus := eventbus.NewTyped[events.ForecastEvent]()
	fc, err := forecast.NewService(model, cfg.Features.Defaults, bus, logger.New("forecast"))
	if err != nil {
		return nil, err
	}

	svc := &Service{Forecast: fc, cfg: cfg, bus: bus, sink: sink, log: logg}
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.mqtt = client
	}

	opts := apiforecast.Options{DefaultHours: cfg.Server.DefaultHours, MaxHorizonHours: cfg.Server.MaxHorizonHours}
	svc.server = &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           apiforecast.NewRouter(fc, opts, logger.New("http")),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	return svc, nil
}

// Handler returns the HTTP handler of the service.
func (s *Service) Handler() http.Handler { return s.server.Handler }

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the service on ln until the context is cancelled.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	collector := metrics.StartEventCollector(ctx, s.bus, s.sink)
	var publisher <-chan struct{}
	if s.mqtt != nil {
		publisher = mqtt.StartRecommendationPublisher(ctx, s.bus, s.mqtt, s.cfg.MQTT.Topic)
	}
	if port := s.cfg.Metrics.PrometheusPort; port != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, port); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		defer coremon.Recover()
		s.log.Infof("listening on %s", ln.Addr())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), s.shutdownTimeout())
	defer stop()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.log.Warnf("http shutdown: %v", err)
	}
	cancel()
	<-collector
	if publisher != nil {
		<-publisher
	}
	return runErr
}

func (s *Service) shutdownTimeout() time.Duration {
	if s.cfg.Server.ShutdownTimeout > 0 {
		return s.cfg.Server.ShutdownTimeout
	}
	return 5 * time.Second
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.mqtt != nil {
		s.mqtt.Disconnect()
	}
	if c, ok := s.sink.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return err
		}
	}
	coremon.Flush(2 * time.Second)
	return nil
}
