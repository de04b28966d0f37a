package zval

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics interface {
	// CopyOnWrite collects separations of a shared array before a write
	CopyOnWrite()
	// DeepCopy collects deep copies by reason
	DeepCopy(reason CopyReason)
	// Diagnostic collects soft diagnostics by kind
	Diagnostic(kind DiagnosticKind)
	// RecursionGuard collects walks stopped by the visited flag
	RecursionGuard()
}

type nullMetrics struct{}

func (n nullMetrics) CopyOnWrite() {
}

func (n nullMetrics) DeepCopy(reason CopyReason) {
}

func (n nullMetrics) Diagnostic(kind DiagnosticKind) {
}

func (n nullMetrics) RecursionGuard() {
}

type PrometheusMetrics struct {
	registry      prometheus.Registerer
	separations   prometheus.Counter
	deepCopies    *prometheus.CounterVec
	diagnostics   *prometheus.CounterVec
	recursionHits prometheus.Counter
	mu            sync.Mutex
	seenKinds     map[DiagnosticKind]prometheus.Counter
}

func (m *PrometheusMetrics) CopyOnWrite() {
	m.separations.Inc()
}

func (m *PrometheusMetrics) DeepCopy(reason CopyReason) {
	m.deepCopies.WithLabelValues(reason.String()).Inc()
}

func (m *PrometheusMetrics) Diagnostic(kind DiagnosticKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.seenKinds[kind]
	if !ok {
		c = m.diagnostics.WithLabelValues(kind.String())
		m.seenKinds[kind] = c
	}
	c.Inc()
}

func (m *PrometheusMetrics) RecursionGuard() {
	m.recursionHits.Inc()
}

func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &PrometheusMetrics{
		registry: registry,
		separations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zval_cow_separations_total",
			Help: "Number of shared array tables copied before a write",
		}),
		deepCopies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zval_deep_copies_total",
			Help: "Number of deep array copies",
		}, []string{"reason"}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zval_diagnostics_total",
			Help: "Number of soft diagnostics raised",
		}, []string{"kind"}),
		recursionHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zval_recursion_guard_hits_total",
			Help: "Number of recursive walks stopped on an already visited array",
		}),
		seenKinds: map[DiagnosticKind]prometheus.Counter{},
	}

	m.registry.MustRegister(m.separations)
	m.registry.MustRegister(m.deepCopies)
	m.registry.MustRegister(m.diagnostics)
	m.registry.MustRegister(m.recursionHits)

	return m
}
