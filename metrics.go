package domsanitizer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "domsanitizer"

// Reasons reported by the stripped attributes counter.
const (
	reasonNotAllowed = "not_allowed"
	reasonUnsafeURL  = "unsafe_url"
)

// Metrics counts what the sanitizer removed. A nil *Metrics records nothing.
type Metrics struct {
	DangerousPatterns  *prometheus.CounterVec
	UnwrappedElements  *prometheus.CounterVec
	StrippedAttributes *prometheus.CounterVec
}

// NewMetrics creates the sanitizer counters and registers them with reg.
// A nil reg leaves the counters unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DangerousPatterns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dangerous_patterns_total",
				Help:      "Dangerous pattern matches removed from HTML input",
			},
			[]string{"pattern"},
		),
		UnwrappedElements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unwrapped_elements_total",
				Help:      "Disallowed elements replaced by their text content",
			},
			[]string{"level"},
		),
		StrippedAttributes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stripped_attributes_total",
				Help:      "Attributes removed from allowed elements",
			},
			[]string{"reason"},
		),
	}
}

func (m *Metrics) patternRemoved(name string, n int) {
	if m == nil {
		return
	}
	m.DangerousPatterns.WithLabelValues(name).Add(float64(n))
}

func (m *Metrics) elementUnwrapped(level SecurityLevel) {
	if m == nil {
		return
	}
	m.UnwrappedElements.WithLabelValues(level.String()).Inc()
}

func (m *Metrics) attributeStripped(reason string) {
	if m == nil {
		return
	}
	m.StrippedAttributes.WithLabelValues(reason).Inc()
}
