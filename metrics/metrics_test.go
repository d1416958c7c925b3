package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordApplied("network")
	r.RecordApplied("network")
	r.RecordApplied("text")
	r.RecordSuppressed("text", "throttled")
	r.RecordReset()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.evidenceApplied.WithLabelValues("network")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.evidenceApplied.WithLabelValues("text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.evidenceSuppressed.WithLabelValues("text", "throttled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.resets))
}

func TestRecorder_ObserveUsage(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveUsage("tab-1", map[string]int{"system": 2300, "conversation": 500}, 16000)

	assert.Equal(t, 2300.0, testutil.ToFloat64(r.usageTokens.WithLabelValues("tab-1", "system")))
	assert.Equal(t, 500.0, testutil.ToFloat64(r.usageTokens.WithLabelValues("tab-1", "conversation")))
	assert.Equal(t, 16000.0, testutil.ToFloat64(r.contextLimit.WithLabelValues("tab-1")))

	r.ForgetConversation("tab-1")

	count, err := testutil.GatherAndCount(reg, "ctxmeter_usage_tokens", "ctxmeter_context_limit_tokens")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNewRecorder_SeparateRegistries(t *testing.T) {
	// Two recorders on separate registries must not collide.
	a := NewRecorder(prometheus.NewRegistry())
	b := NewRecorder(prometheus.NewRegistry())
	require.NotNil(t, a)
	require.NotNil(t, b)
}
