package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(linkPackets.WithLabelValues("metrics-a", DirectionTx, ResultOK))
	RecordPacket("metrics-a", DirectionTx, ResultOK, 20)
	RecordPacket("metrics-a", DirectionRx, ResultMalformed, 7)

	after := testutil.ToFloat64(linkPackets.WithLabelValues("metrics-a", DirectionTx, ResultOK))
	if after-before != 1 {
		t.Fatalf("expected tx ok counter +1, got %v", after-before)
	}
	if got := testutil.ToFloat64(linkBytes.WithLabelValues("metrics-a", DirectionRx)); got != 0 {
		t.Fatalf("expected no rx bytes for malformed packet, got %v", got)
	}
}

func TestHandlerExposesLinkMetrics(t *testing.T) {
	RecordPacket("metrics-b", DirectionRx, ResultOK, 12)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "lorawords_link_packets_total") {
		t.Fatalf("expected link packet metric in output")
	}
}
