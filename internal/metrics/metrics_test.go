package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(body)
}

func TestMetricsExposition(t *testing.T) {
	m := New(func() int { return 3 })
	m.ObserveRPC("/taxwiser.v1.ReturnService/EditFields", "ok", 0.01)
	m.ObserveRecompute(5)
	m.Autosave("ok")
	m.AssistantReply("topic")

	body := scrape(t, m)
	for _, want := range []string{
		`taxwiser_rpc_requests_total{code="ok",procedure="/taxwiser.v1.ReturnService/EditFields"} 1`,
		`taxwiser_recompute_changed_fields_count 1`,
		`taxwiser_autosaves_total{result="ok"} 1`,
		`taxwiser_assistant_replies_total{kind="topic"} 1`,
		`taxwiser_open_sessions 3`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRPC("p", "ok", 1)
	m.ObserveRecompute(1)
	m.Autosave("error")
	m.AssistantReply("fallback")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
