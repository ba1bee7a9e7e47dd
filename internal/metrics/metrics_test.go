package metrics

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NikitaCOEUR/dirsh/internal/derrors"
)

func counterValue(t *testing.T, r *Recorder, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := r.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestObserve(t *testing.T) {
	r := New()
	r.Observe("execute", nil, time.Millisecond)
	r.Observe("execute", derrors.NewParamNotBound("x"), time.Millisecond)
	r.Observe("complete", errors.New("plain"), time.Millisecond)

	assert.Equal(t, 1.0, counterValue(t, r, "dirsh_operations_total", map[string]string{"operation": "execute", "outcome": OutcomeOK}))
	assert.Equal(t, 1.0, counterValue(t, r, "dirsh_operations_total", map[string]string{"operation": "execute", "outcome": OutcomeError}))
	assert.Equal(t, 1.0, counterValue(t, r, "dirsh_parse_failures_total", map[string]string{"operation": "execute", "kind": "PARAM_NOT_BOUND"}))
	assert.Equal(t, 1.0, counterValue(t, r, "dirsh_parse_failures_total", map[string]string{"operation": "complete", "kind": "other"}))
}

func TestHandler(t *testing.T) {
	r := New()
	r.Observe("execute", nil, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "dirsh_operations_total")
	assert.Contains(t, rec.Body.String(), "dirsh_operation_duration_seconds_bucket")
}

func TestServe_StopsWithContext(t *testing.T) {
	r := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_BadAddress(t *testing.T) {
	err := New().Serve(context.Background(), "not-an-address")
	assert.Error(t, err)
}
