package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores del servicio sobre un registry propio.
// Cumple registrations.Recorder y dashboard.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	registrationWrites   *prometheus.CounterVec
	realtimeNotification *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		registrationWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_writes_total",
			Help:      "Registration writes by operation and result.",
		}, []string{"op", "result"}),
		realtimeNotification: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_notifications_total",
			Help:      "Realtime notifications handled by the dashboard, by event and outcome.",
		}, []string{"event", "outcome"}),
	}
	reg.MustRegister(m.registrationWrites, m.realtimeNotification)
	return m
}

func (m *Metrics) RegistrationWrite(op, result string) {
	m.registrationWrites.WithLabelValues(op, result).Inc()
}

func (m *Metrics) RealtimeNotification(event, outcome string) {
	m.realtimeNotification.WithLabelValues(event, outcome).Inc()
}

// Handler expone /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
