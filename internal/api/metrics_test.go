package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectMetric extracts a label-matched metric from a Collector.
func collectMetric(t *testing.T, c prometheus.Collector, labels map[string]string) *dto.Metric {
	t.Helper()
	ch := make(chan prometheus.Metric, 100)
	c.Collect(ch)
	close(ch)

	for m := range ch {
		d := &dto.Metric{}
		if err := m.Write(d); err != nil {
			continue
		}

		match := true
		for k, v := range labels {
			found := false
			for _, lp := range d.GetLabel() {
				if lp.GetName() == k && lp.GetValue() == v {
					found = true
					break
				}
			}
			if !found {
				match = false
				break
			}
		}
		if match {
			return d
		}
	}
	return nil
}

func TestRequestCounter_LabeledByOperationAndStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	before := 0.0
	if m := collectMetric(t, backendRequestsTotal, map[string]string{
		"operation": "catalog.list", "status": "200",
	}); m != nil {
		before = m.GetCounter().GetValue()
	}

	_, err := c.Products(context.Background(), "")
	require.NoError(t, err)

	m := collectMetric(t, backendRequestsTotal, map[string]string{
		"operation": "catalog.list", "status": "200",
	})
	require.NotNil(t, m)
	assert.Equal(t, before+1, m.GetCounter().GetValue())
}

func TestRequestDuration_ObservedPerOperation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	before := uint64(0)
	if m := collectMetric(t, backendRequestDuration, map[string]string{
		"operation": "catalog.list",
	}); m != nil {
		before = m.GetHistogram().GetSampleCount()
	}

	_, err := c.Products(context.Background(), "")
	require.NoError(t, err)

	m := collectMetric(t, backendRequestDuration, map[string]string{
		"operation": "catalog.list",
	})
	require.NotNil(t, m)
	assert.Equal(t, before+1, m.GetHistogram().GetSampleCount())
}

func TestRequestCounter_TransportErrorLabel(t *testing.T) {
	// Point at a closed port so the transport fails.
	c := New("http://127.0.0.1:1", plainDoer{client: http.DefaultClient}, nil, newTestLogger())

	before := 0.0
	if m := collectMetric(t, backendRequestsTotal, map[string]string{
		"operation": "catalog.list", "status": "transport_error",
	}); m != nil {
		before = m.GetCounter().GetValue()
	}

	_, err := c.Products(context.Background(), "")
	require.Error(t, err)

	m := collectMetric(t, backendRequestsTotal, map[string]string{
		"operation": "catalog.list", "status": "transport_error",
	})
	require.NotNil(t, m)
	assert.Equal(t, before+1, m.GetCounter().GetValue())
}
