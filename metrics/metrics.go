// Package metrics provides Prometheus instrumentation for the usage
// engine's merge decisions: evidence applied, evidence suppressed,
// resets, and the current per-segment estimate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder contains Prometheus collectors for the usage engine.
type Recorder struct {
	evidenceApplied    *prometheus.CounterVec
	evidenceSuppressed *prometheus.CounterVec
	resets             prometheus.Counter
	usageTokens        *prometheus.GaugeVec
	contextLimit       *prometheus.GaugeVec
}

// NewRecorder creates a Recorder registered on the given registerer.
// A nil registerer uses the default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		evidenceApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctxmeter_evidence_applied_total",
				Help: "Total number of evidence updates merged into usage state",
			},
			[]string{"kind"},
		),

		evidenceSuppressed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ctxmeter_evidence_suppressed_total",
				Help: "Total number of evidence updates dropped by merge rules",
			},
			[]string{"kind", "reason"},
		),

		resets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ctxmeter_conversation_resets_total",
				Help: "Total number of conversation-boundary resets",
			},
		),

		usageTokens: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ctxmeter_usage_tokens",
				Help: "Current estimated token usage per conversation segment",
			},
			[]string{"conversation", "segment"},
		),

		contextLimit: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ctxmeter_context_limit_tokens",
				Help: "Current inferred context-limit ceiling per conversation",
			},
			[]string{"conversation"},
		),
	}
}

// RecordApplied records a merged evidence update.
func (r *Recorder) RecordApplied(kind string) {
	r.evidenceApplied.WithLabelValues(kind).Inc()
}

// RecordSuppressed records an evidence update dropped by merge rules.
func (r *Recorder) RecordSuppressed(kind, reason string) {
	r.evidenceSuppressed.WithLabelValues(kind, reason).Inc()
}

// RecordReset records a conversation-boundary reset.
func (r *Recorder) RecordReset() {
	r.resets.Inc()
}

// ObserveUsage updates the usage gauges for a conversation.
func (r *Recorder) ObserveUsage(conversation string, segments map[string]int, limit int) {
	for segment, count := range segments {
		r.usageTokens.WithLabelValues(conversation, segment).Set(float64(count))
	}
	r.contextLimit.WithLabelValues(conversation).Set(float64(limit))
}

// ForgetConversation drops the gauges for a destroyed conversation.
func (r *Recorder) ForgetConversation(conversation string) {
	r.usageTokens.DeletePartialMatch(prometheus.Labels{"conversation": conversation})
	r.contextLimit.DeleteLabelValues(conversation)
}
