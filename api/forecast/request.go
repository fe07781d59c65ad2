package forecast

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	coreforecast "github.com/kilianp07/evload/core/forecast"
)

const maxBodyBytes = 1 << 20

// Options bounds the accepted requests.
type Options struct {
	DefaultHours    int
	MaxHorizonHours int
}

func (o Options) withDefaults() Options {
	if o.DefaultHours <= 0 {
		o.DefaultHours = 24
	}
	if o.MaxHorizonHours <= 0 {
		o.MaxHorizonHours = 168
	}
	return o
}

// predictRequest is the JSON body of POST /predict.
type predictRequest struct {
	LastTimestamp string         `json:"last_timestamp"`
	Hours         *int           `json:"hours"`
	StartHour     *int           `json:"start_hour"`
	EndHour       *int           `json:"end_hour"`
	Overrides     map[string]any `json:"overrides"`
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", coreforecast.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// parseRequest decodes a form or JSON request into a forecast request.
func parseRequest(w http.ResponseWriter, r *http.Request, opts Options) (coreforecast.Request, error) {
	var body predictRequest
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return coreforecast.Request{}, invalid("malformed JSON body: %v", err)
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return coreforecast.Request{}, invalid("request body too large")
			}
			return coreforecast.Request{}, invalid("malformed form: %v", err)
		}
		var err error
		if body, err = formRequest(r); err != nil {
			return coreforecast.Request{}, err
		}
	}
	return body.toRequest(opts)
}

// formRequest reads the form fields. Fields named after a feature default
// (e.g. Temperature_C) become overrides.
func formRequest(r *http.Request) (predictRequest, error) {
	body := predictRequest{LastTimestamp: r.PostForm.Get("last_timestamp")}
	var err error
	if body.Hours, err = formInt(r, "hours"); err != nil {
		return body, err
	}
	if body.StartHour, err = formInt(r, "start_hour"); err != nil {
		return body, err
	}
	if body.EndHour, err = formInt(r, "end_hour"); err != nil {
		return body, err
	}
	for _, k := range coreforecast.Keys() {
		if v := strings.TrimSpace(r.PostForm.Get(k)); v != "" {
			if body.Overrides == nil {
				body.Overrides = make(map[string]any)
			}
			body.Overrides[k] = v
		}
	}
	return body, nil
}

func formInt(r *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(r.PostForm.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalid("%s must be an integer, got %q", name, raw)
	}
	return &v, nil
}

func (b predictRequest) toRequest(opts Options) (coreforecast.Request, error) {
	last, err := coreforecast.ParseTimestamp(b.LastTimestamp)
	if err != nil {
		return coreforecast.Request{}, err
	}
	hours := opts.DefaultHours
	if b.Hours != nil {
		hours = *b.Hours
	}
	if hours < 1 || hours > opts.MaxHorizonHours {
		return coreforecast.Request{}, invalid("hours must be within [1,%d], got %d", opts.MaxHorizonHours, hours)
	}
	if b.StartHour == nil || b.EndHour == nil {
		return coreforecast.Request{}, invalid("start_hour and end_hour are required")
	}
	if err := checkHour("start_hour", *b.StartHour); err != nil {
		return coreforecast.Request{}, err
	}
	if err := checkHour("end_hour", *b.EndHour); err != nil {
		return coreforecast.Request{}, err
	}
	return coreforecast.Request{
		LastTimestamp: last,
		Hours:         hours,
		Window:        coreforecast.HourRange{Start: *b.StartHour, End: *b.EndHour},
		Overrides:     b.Overrides,
	}, nil
}

func checkHour(name string, h int) error {
	if h < 0 || h > 23 {
		return invalid("%s must be within [0,23], got %d", name, h)
	}
	return nil
}
