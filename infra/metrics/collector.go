package metrics

import (
	"context"

	"github.com/kilianp07/evload/core/events"
	coremetrics "github.com/kilianp07/evload/core/metrics"
	"github.com/kilianp07/evload/infra/logger"
	"github.com/kilianp07/evload/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// forecast events. It stops when the context is canceled or the bus closes.
// The returned channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus *eventbus.TypedBus[events.ForecastEvent], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := sink.RecordForecast(ev); err != nil {
					log.Warnf("record forecast %s: %v", ev.RequestID, err)
				}
				if r, ok := sink.(coremetrics.DroppedEventsRecorder); ok {
					_ = r.RecordDroppedEvents(bus.Dropped())
				}
			}
		}
	}()
	return done
}
