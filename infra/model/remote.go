package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kilianp07/evload/auth"
	"github.com/kilianp07/evload/core/forecast"
	"github.com/kilianp07/evload/core/prediction"
)

// RemoteConfig configures a RemoteModel.
type RemoteConfig struct {
	URL     string            `json:"url"`
	Name    string            `json:"name"`
	Version string            `json:"version"`
	Timeout time.Duration     `json:"timeout"`
	Headers map[string]string `json:"headers"`
	Auth    auth.Conf         `json:"auth"`
}

type remoteRequest struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

type remoteResponse struct {
	Predictions []*float64 `json:"predictions"`
}

// RemoteModel delegates inference to an HTTP service hosting the trained
// estimator.
type RemoteModel struct {
	cfg    RemoteConfig
	client *http.Client
	cred   *auth.ClientCred
}

// NewRemoteModel validates cfg and returns a client-backed model.
func NewRemoteModel(cfg RemoteConfig) (*RemoteModel, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("remote model: url is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Name == "" {
		cfg.Name = "remote"
	}
	m := &RemoteModel{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
	if cfg.Auth.Enabled() {
		m.cred = auth.NewClientCred(cfg.Auth)
	}
	return m, nil
}

// Predict posts the feature table and returns the service predictions.
// Transport failures, non-2xx answers and malformed predictions wrap
// prediction.ErrUpstream. A 401 triggers one token refresh and retry.
func (m *RemoteModel) Predict(ctx context.Context, x [][]float64) ([]float64, error) {
	body, err := json.Marshal(remoteRequest{Columns: forecast.Columns(), Rows: x})
	if err != nil {
		return nil, err
	}
	resp, err := m.post(ctx, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && m.cred != nil {
		resp.Body.Close()
		if _, err := m.cred.ForceRefresh(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", prediction.ErrUpstream, err)
		}
		if resp, err = m.post(ctx, body); err != nil {
			return nil, err
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", prediction.ErrUpstream, resp.StatusCode, bytes.TrimSpace(msg))
	}
	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", prediction.ErrUpstream, err)
	}
	preds := make([]float64, len(out.Predictions))
	for i, p := range out.Predictions {
		if p == nil {
			return nil, fmt.Errorf("%w: prediction %d is null", prediction.ErrUpstream, i)
		}
		preds[i] = *p
	}
	return preds, nil
}

func (m *RemoteModel) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range m.cfg.Headers {
		req.Header.Set(k, v)
	}
	if m.cred != nil {
		if err := m.cred.SetAuthHeader(req); err != nil {
			return nil, fmt.Errorf("%w: %v", prediction.ErrUpstream, err)
		}
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", prediction.ErrUpstream, err)
	}
	return resp, nil
}

// Info implements prediction.Describer.
func (m *RemoteModel) Info() prediction.Info {
	return prediction.Info{Name: m.cfg.Name, Type: "remote", Version: m.cfg.Version, Source: m.cfg.URL}
}
