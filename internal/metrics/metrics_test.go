package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIncAndExpose(t *testing.T) {
	labels := prometheus.Labels{"surface": "test", "state": "ResultDisplayed"}
	before := testutil.ToFloat64(AnalysisCycles.With(labels))

	Inc(AnalysisCycles, labels)
	Inc(AnalysisCycles, labels)

	if got := testutil.ToFloat64(AnalysisCycles.With(labels)); got != before+2 {
		t.Errorf("counter = %v, want %v", got, before+2)
	}

	Observe(AnalysisLatency, prometheus.Labels{"outcome": "success"}, 1.5)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	for _, name := range []string{"health_advisor_analysis_cycles_total", "health_advisor_analysis_latency_seconds_bucket"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
