// Package events defines the events emitted on the internal event bus.
//
// Available event types:
//   - ForecastEvent: outcome of one forecast request, successful or not
package events
