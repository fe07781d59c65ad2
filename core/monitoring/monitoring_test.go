package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	errs    []error
	tags    []map[string]string
	flushed bool
}

func (r *recorder) CaptureException(err error, tags map[string]string) {
	r.errs = append(r.errs, err)
	r.tags = append(r.tags, tags)
}
func (r *recorder) Flush(time.Duration) { r.flushed = true }

func TestCaptureException(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	defer Init(NopMonitor{})

	CaptureException(nil, nil)
	CaptureException(errors.New("boom"), map[string]string{"component": "api"})
	require.Len(t, rec.errs, 1)
	assert.Equal(t, "api", rec.tags[0]["component"])

	Init(nil)
	CaptureException(errors.New("again"), nil)
	assert.Len(t, rec.errs, 2, "nil Init must keep the current monitor")
}

func TestRecoverRepanics(t *testing.T) {
	rec := &recorder{}
	Init(rec)
	defer Init(NopMonitor{})

	assert.PanicsWithValue(t, "kaboom", func() {
		defer Recover()
		panic("kaboom")
	})
	require.Len(t, rec.errs, 1)
	assert.EqualError(t, rec.errs[0], "panic: kaboom")
	assert.True(t, rec.flushed)
}
