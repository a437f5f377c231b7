package metrics

import "github.com/prometheus/client_golang/prometheus"

// CascadeMetrics counts receipt status changes made by the status cascade.
type CascadeMetrics struct {
	transitions *prometheus.CounterVec
}

// NewCascadeMetrics registers the cascade collectors on reg. A nil registerer
// yields a no-op collector.
func NewCascadeMetrics(reg prometheus.Registerer) *CascadeMetrics {
	if reg == nil {
		return &CascadeMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipt_status_transitions_total",
		Help: "Receipt status changes applied by the mix status cascade.",
	}, []string{"to"})
	reg.MustRegister(transitions)
	return &CascadeMetrics{transitions: transitions}
}

// IncTransition records a receipt moving to status.
func (c *CascadeMetrics) IncTransition(status string) {
	if c == nil || c.transitions == nil {
		return
	}
	c.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}
