package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	DirectionTx = "tx"
	DirectionRx = "rx"

	ResultOK        = "ok"
	ResultInvalid   = "invalid"
	ResultMalformed = "malformed"
	ResultFiltered  = "filtered"
	ResultError     = "error"
)

var (
	registerOnce sync.Once

	linkPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lorawords",
			Subsystem: "link",
			Name:      "packets_total",
			Help:      "Packets handled by the link, by direction and outcome.",
		},
		[]string{"node", "direction", "result"},
	)
	linkBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lorawords",
			Subsystem: "link",
			Name:      "bytes_total",
			Help:      "Encoded packet bytes moved over the link.",
		},
		[]string{"node", "direction"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(linkPackets, linkBytes)
	})
}

// RecordPacket counts one packet outcome; bytes is only added for ResultOK.
func RecordPacket(node, direction, result string, bytes int) {
	RegisterMetrics()
	linkPackets.WithLabelValues(node, direction, result).Inc()
	if result == ResultOK && bytes > 0 {
		linkBytes.WithLabelValues(node, direction).Add(float64(bytes))
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	RegisterMetrics()
	return promhttp.Handler()
}
