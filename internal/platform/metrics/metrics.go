package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the client.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	SessionTransitions *prometheus.CounterVec
	CartMutations      *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trolley_requests_total",
			Help: "Outbound requests by method and outcome.",
		}, []string{"method", "outcome"}),
		SessionTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trolley_session_transitions_total",
			Help: "Session state machine transitions by target state.",
		}, []string{"to"}),
		CartMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "trolley_cart_mutations_total",
			Help: "Cart operations by kind and result.",
		}, []string{"op", "result"}),
	}
}

// NewDefault registers against the global prometheus registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// IncRequest records one outbound request outcome.
func (m *Metrics) IncRequest(method, outcome string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, outcome).Inc()
}

// IncTransition records one session transition into state to.
func (m *Metrics) IncTransition(to string) {
	if m == nil {
		return
	}
	m.SessionTransitions.WithLabelValues(to).Inc()
}

// IncCartMutation records one cart operation result.
func (m *Metrics) IncCartMutation(op, result string) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op, result).Inc()
}
