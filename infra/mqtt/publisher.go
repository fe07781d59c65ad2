package mqtt

import (
	"context"
	"encoding/json"

	"github.com/kilianp07/evload/core/events"
	coremon "github.com/kilianp07/evload/core/monitoring"
	coremqtt "github.com/kilianp07/evload/core/mqtt"
	"github.com/kilianp07/evload/infra/logger"
	"github.com/kilianp07/evload/internal/eventbus"
)

// StartRecommendationPublisher forwards the best hours of every successful
// forecast to topic. Publishing errors are logged and reported to the monitor;
// they never affect the request that produced the event. The returned channel
// is closed when the publisher stops.
func StartRecommendationPublisher(ctx context.Context, bus *eventbus.TypedBus[events.ForecastEvent], pub coremqtt.Publisher, topic string) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || pub == nil {
		close(done)
		return done
	}
	if topic == "" {
		topic = coremqtt.DefaultRecommendationTopic
	}
	log := logger.New("recommendation_publisher")
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
				if !ev.OK() {
					continue
				}
				payload, err := json.Marshal(coremqtt.NewRecommendationMessage(ev))
				if err != nil {
					log.Errorf("encode recommendation %s: %v", ev.RequestID, err)
					continue
				}
				if err := pub.Publish(topic, payload); err != nil {
					log.Warnf("publish recommendation %s: %v", ev.RequestID, err)
					coremon.CaptureException(err, map[string]string{"component": "mqtt", "request_id": ev.RequestID})
				}
			}
		}
	}()
	return done
}
