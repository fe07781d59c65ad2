package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/evload/config"
	"github.com/kilianp07/evload/core/factory"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Model = factory.ModuleConfig{Type: "constant", Conf: map[string]any{"value": 12.5}}
	cfg.Metrics.Sinks = []factory.ModuleConfig{{Type: "nop"}}
	return cfg
}

func TestNew_UnknownModel(t *testing.T) {
	cfg := testConfig()
	cfg.Model.Type = "pickle"
	_, err := New(cfg)
	assert.ErrorContains(t, err, "load model")
}

func TestNewForecaster(t *testing.T) {
	fc, err := NewForecaster(testConfig())
	require.NoError(t, err)
	assert.Equal(t, "constant", fc.Model().Type)
}

func TestService_ServeAndShutdown(t *testing.T) {
	svc, err := New(testConfig())
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx, ln) }()

	base := "http://" + ln.Addr().String()
	form := url.Values{"last_timestamp": {"2024-01-01T00:00:00"}, "hours": {"6"}, "start_hour": {"0"}, "end_hour": {"3"}}
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Post(base+"/predict", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var out struct {
		All  []map[string]any `json:"all_predictions"`
		Best []map[string]any `json:"best_times"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.All, 6)
	assert.Len(t, out.Best, 3)
	assert.Equal(t, 12.5, out.Best[0]["Predicted_Load_kW"])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
	}
}
