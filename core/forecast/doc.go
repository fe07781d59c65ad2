// Package forecast turns a last known timestamp into an hourly EV charging
// load forecast.
//
// Synthesize builds one feature Row per future hour: calendar fields derived
// from the timestamp plus the operational and environmental Defaults, which
// callers may override uniformly for every row. PredictAndRecommend sends the
// feature table to a prediction.Model in one batch, attaches the predicted
// load to each row and picks the lowest-load hours inside an hour-of-day
// window. Service ties both steps together for one request and reports the
// outcome on the event bus.
package forecast
