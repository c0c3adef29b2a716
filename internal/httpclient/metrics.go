package httpclient

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts outgoing API calls by logical operation so dashboards
// stay low-cardinality regardless of path parameters.
type Metrics struct {
	requestsTotal *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hrconsole_api_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"operation", "method", "status"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.requestsTotal)
	}
	return m
}

func (m *Metrics) observe(operation, method string, status int) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(operation, method, strconv.Itoa(status)).Inc()
}
