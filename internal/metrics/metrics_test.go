package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatherMetric finds a metric family by name in the registry
func gatherMetric(t *testing.T, registry *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	m.RecordHTTPRequest("GET", "/api/ideas", 200, 50*time.Millisecond)
	m.RecordHTTPRequest("POST", "/api/ideas/generate", 502, 1200*time.Millisecond)

	mf := gatherMetric(t, registry, "idea_service_http_requests_total")
	require.NotNil(t, mf, "http_requests_total should be registered")
	require.Len(t, mf.GetMetric(), 2)

	for _, metric := range mf.GetMetric() {
		assert.Equal(t, float64(1), metric.GetCounter().GetValue())

		labels := map[string]string{}
		for _, l := range metric.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		switch labels["method"] {
		case "GET":
			assert.Equal(t, "2xx", labels["status"])
		case "POST":
			assert.Equal(t, "5xx", labels["status"])
		default:
			t.Errorf("unexpected method label %q", labels["method"])
		}
	}
}

func TestMetrics_GenerationRuns(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	m.RecordGenerationRun("success")
	m.RecordGenerationRun("success")
	m.RecordGenerationRun("external_api_error")
	m.IncrementIdeaCreated()
	m.AddCommentsConsumed(50)

	mf := gatherMetric(t, registry, "idea_service_generation_runs_total")
	require.NotNil(t, mf)

	total := float64(0)
	for _, metric := range mf.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), total)

	consumed := gatherMetric(t, registry, "idea_service_comments_consumed_total")
	require.NotNil(t, consumed)
	require.Len(t, consumed.GetMetric(), 1)
	assert.Equal(t, float64(50), consumed.GetMetric()[0].GetCounter().GetValue())
}

func TestMetrics_SetGauges(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegistry(registry, nil)

	m.SetIdeasTotal(42)
	m.SetCommentsUnusedTotal(7)

	ideas := gatherMetric(t, registry, "idea_service_ideas_total")
	require.NotNil(t, ideas)
	assert.Equal(t, float64(42), ideas.GetMetric()[0].GetGauge().GetValue())

	unused := gatherMetric(t, registry, "idea_service_comments_unused_total")
	require.NotNil(t, unused)
	assert.Equal(t, float64(7), unused.GetMetric()[0].GetGauge().GetValue())
}

func TestCategorizeStatus(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{502, "5xx"},
		{100, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeStatus(tt.code), "status %d", tt.code)
	}
}
