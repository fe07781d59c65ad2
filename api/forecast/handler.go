package forecast

import (
	"context"
	"errors"
	"net/http"

	coreforecast "github.com/kilianp07/evload/core/forecast"
	"github.com/kilianp07/evload/core/logger"
	"github.com/kilianp07/evload/core/prediction"
)

// Forecaster produces forecasts. *coreforecast.Service satisfies it.
type Forecaster interface {
	Forecast(ctx context.Context, req coreforecast.Request) (coreforecast.Result, error)
	Model() prediction.Info
}

// NewPredictHandler returns the POST /predict handler.
func NewPredictHandler(svc Forecaster, opts Options, log logger.Logger) http.Handler {
	opts = opts.withDefaults()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id := RequestID(r.Context())
		req, err := parseRequest(w, r, opts)
		if err != nil {
			writeError(w, id, err)
			return
		}
		req.RequestID = id
		res, err := svc.Forecast(r.Context(), req)
		if err != nil {
			if status := statusFor(err); status >= http.StatusInternalServerError {
				log.Errorf("predict %s: %v", id, err)
			}
			writeError(w, id, err)
			return
		}
		writeJSON(w, http.StatusOK, newPredictResponse(res))
	})
}

// statusFor maps forecast errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, coreforecast.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, prediction.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, id string, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error(), RequestID: id})
}

// NewHealthHandler reports liveness and the loaded model.
func NewHealthHandler(svc Forecaster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		info := svc.Model()
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "model": info.Name, "model_type": info.Type})
	})
}
