package usage

import (
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/ctxmeter/ctxmeter/infer"
	"github.com/ctxmeter/ctxmeter/metrics"
	"github.com/ctxmeter/ctxmeter/platform"
	"github.com/ctxmeter/ctxmeter/tokens"
)

// DefaultThrottleInterval bounds how often a text estimate is evaluated,
// regardless of DOM mutation burst frequency.
const DefaultThrottleInterval = 500 * time.Millisecond

// DefaultMinSignalTokens is the floor below which a text estimate on an
// otherwise empty conversation is treated as boilerplate noise.
const DefaultMinSignalTokens = 10

// Suppression reasons, reported to metrics.
const (
	reasonThrottled = "throttled"
	reasonStale     = "stale"
	reasonEmpty     = "empty"
	reasonNoSignal  = "no_signal"
)

// Options configures a Tracker (and, via Store, all trackers).
// The zero value gives built-in defaults.
type Options struct {
	// Rules overrides the context-limit/overhead table.
	Rules *platform.Rules

	// Counter overrides the text token estimator.
	Counter *tokens.EstimatingCounter

	// ThrottleInterval is the minimum spacing between applied text
	// estimates. Zero means DefaultThrottleInterval.
	ThrottleInterval time.Duration

	// MinSignalTokens is the empty-page guard threshold. Zero means
	// DefaultMinSignalTokens; negative disables the guard.
	MinSignalTokens int

	// Emit receives a snapshot after every applied merge or reset.
	Emit EmitFunc

	// Metrics optionally records merge decisions.
	Metrics *metrics.Recorder

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Rules == nil {
		o.Rules = platform.Default()
	}
	if o.Counter == nil {
		o.Counter = tokens.NewEstimatingCounter()
	}
	if o.ThrottleInterval == 0 {
		o.ThrottleInterval = DefaultThrottleInterval
	}
	if o.MinSignalTokens == 0 {
		o.MinSignalTokens = DefaultMinSignalTokens
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Tracker is the per-conversation authority over usage state. It is the
// sole mutator: evidence producers only propose candidate updates, and
// the Tracker applies or suppresses each one under trust-ordered merge
// rules. Within one conversation, usage is treated as monotonically
// non-decreasing for low-trust evidence, because evidence quality only
// improves as more of the conversation renders.
//
// Trackers assume the single-threaded, event-driven model of the host
// page: callers serialize Apply/ObserveLocation/Reset. Use Store when
// multiple goroutines are involved.
type Tracker struct {
	id       string
	platform platform.Platform
	opts     Options

	tracking bool

	plan       platform.Plan
	planPinned bool

	modelID          string
	modelName        string
	modelFromNetwork bool

	contextLimit int
	segments     Segments
	total        int

	// networkPinned marks that an authoritative total was merged this
	// conversation, locking text estimates out of lowering it.
	networkPinned bool

	lastURL string
	limiter *rate.Limiter
}

// NewTracker creates a tracker for one conversation context. The id is
// the caller's conversation/tab identifier, echoed in snapshots.
func NewTracker(id string, p platform.Platform, opts Options) *Tracker {
	opts = opts.withDefaults()
	t := &Tracker{
		id:       id,
		platform: p,
		opts:     opts,
		limiter:  rate.NewLimiter(rate.Every(opts.ThrottleInterval), 1),
	}
	// Zero-signal bootstrap: the conservative free-tier ceiling.
	t.contextLimit = opts.Rules.ContextLimit(p, platform.PlanUnknown, "")
	return t
}

// ID returns the conversation identifier.
func (t *Tracker) ID() string { return t.id }

// Platform returns the platform this tracker was created for. Immutable.
func (t *Tracker) Platform() platform.Platform { return t.platform }

// Tracking reports whether any evidence has been applied yet.
func (t *Tracker) Tracking() bool { return t.tracking }

// Snapshot returns the current reconciled state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Conversation: t.id,
		Platform:     t.platform,
		Plan:         t.plan,
		ModelID:      t.modelID,
		ModelName:    t.modelName,
		ContextLimit: t.contextLimit,
		Total:        t.total,
		Segments:     t.segments,
	}
}

// Apply merges a candidate update, returning true if it changed state.
// Suppressed updates are dropped silently; nothing here ever errors.
func (t *Tracker) Apply(u Update) bool {
	switch v := u.(type) {
	case NetworkUsage:
		return t.applyNetwork(v)
	case TextEstimate:
		return t.applyText(v)
	case UISignal:
		return t.applyUI(v)
	default:
		return false
	}
}

func (t *Tracker) applyNetwork(v NetworkUsage) bool {
	applied := false

	if total := v.Total(); total > 0 {
		t.total = total
		t.segments = t.decompose(total, v.Thinking, v.ToolUse)
		t.networkPinned = true
		applied = true
	}

	if v.ModelID != "" && v.ModelID != t.modelID {
		t.modelID = v.ModelID
		t.modelName = infer.DisplayName(t.platform, v.ModelID)
		t.modelFromNetwork = true
		t.contextLimit = t.opts.Rules.ContextLimit(t.platform, t.plan, t.modelID)
		applied = true
	}

	if !applied {
		t.suppressed(KindNetwork, reasonNoSignal)
		return false
	}

	t.tracking = true
	t.applied(KindNetwork)
	t.emit()
	return true
}

func (t *Tracker) applyText(v TextEstimate) bool {
	if !t.limiter.Allow() {
		t.suppressed(KindText, reasonThrottled)
		return false
	}

	conversation := t.opts.Counter.CountChars(v.Chars)

	// A near-empty page on a zeroed conversation is residual boilerplate,
	// not usage. Stay at zero instead of flapping.
	if conversation < t.opts.MinSignalTokens && t.total == 0 {
		t.suppressed(KindText, reasonEmpty)
		return false
	}

	estimate := conversation + t.overhead().System
	if t.total > 0 && estimate <= t.total {
		t.suppressed(KindText, reasonStale)
		return false
	}

	t.total = estimate
	t.segments = t.decompose(estimate, t.segments.Thinking > 0, t.segments.Tools > 0)
	t.tracking = true
	t.applied(KindText)
	t.emit()
	return true
}

func (t *Tracker) applyUI(v UISignal) bool {
	applied := false

	if v.Plan != platform.PlanUnknown && platform.ValidPlan(t.platform, v.Plan) {
		switch {
		case !t.planPinned:
			t.plan = v.Plan
			t.planPinned = true
			applied = true
		case t.plan == platform.PlanFree && v.Plan.Paid():
			// Mid-session upgrade. Paid plans never downgrade from UI
			// evidence.
			t.plan = v.Plan
			applied = true
		}
	}

	if v.ModelName != "" && !t.modelFromNetwork && v.ModelName != t.modelName {
		t.modelName = v.ModelName
		applied = true
	}

	if !applied {
		t.suppressed(KindUI, reasonStale)
		return false
	}

	// Plan or model changed: re-derive the ceiling, touch nothing else.
	t.contextLimit = t.opts.Rules.ContextLimit(t.platform, t.plan, t.modelKey())
	t.tracking = true
	t.applied(KindUI)
	t.emit()
	return true
}

// ObserveLocation compares the navigable URL against the last observed
// one and resets on change. The first observation never fires.
func (t *Tracker) ObserveLocation(url string) bool {
	if url == "" {
		return false
	}
	if t.lastURL == "" {
		t.lastURL = url
		return false
	}
	if url == t.lastURL {
		return false
	}
	t.lastURL = url
	t.Reset()
	return true
}

// Reset zeroes the totals and segments for a new conversation while
// preserving platform, plan, and model. Per-conversation evidence pins
// are cleared so fresh evidence can re-establish them.
func (t *Tracker) Reset() {
	t.total = 0
	t.segments = Segments{}
	t.networkPinned = false
	t.modelFromNetwork = false
	t.planPinned = t.plan != platform.PlanUnknown

	// Throttle state restarts with the conversation.
	t.limiter = rate.NewLimiter(rate.Every(t.opts.ThrottleInterval), 1)

	if t.opts.Metrics != nil {
		t.opts.Metrics.RecordReset()
	}
	t.opts.Logger.Debug("conversation reset", "conversation", t.id, "platform", t.platform)
	t.emit()
}

// decompose splits a total into segments without breaking the sum
// invariant: each overhead is clamped to what remains.
func (t *Tracker) decompose(total int, thinking, tools bool) Segments {
	overhead := t.overhead()
	remaining := total

	s := Segments{}
	s.System = min(overhead.System, remaining)
	remaining -= s.System

	if thinking {
		s.Thinking = min(overhead.Thinking, remaining)
		remaining -= s.Thinking
	}
	if tools {
		s.Tools = min(overhead.Tools, remaining)
		remaining -= s.Tools
	}

	s.Conversation = remaining
	return s
}

func (t *Tracker) overhead() platform.Overhead {
	return t.opts.Rules.Overhead(t.platform)
}

// modelKey returns the identifier used for limit derivation: the wire id
// when the network provided one, the UI-inferred name otherwise.
func (t *Tracker) modelKey() string {
	if t.modelFromNetwork {
		return t.modelID
	}
	return t.modelName
}

func (t *Tracker) emit() {
	if t.opts.Metrics != nil {
		t.opts.Metrics.ObserveUsage(t.id, t.segments.Map(), t.contextLimit)
	}
	if t.opts.Emit != nil {
		t.opts.Emit(t.Snapshot())
	}
}

func (t *Tracker) applied(kind Kind) {
	if t.opts.Metrics != nil {
		t.opts.Metrics.RecordApplied(string(kind))
	}
}

func (t *Tracker) suppressed(kind Kind, reason string) {
	if t.opts.Metrics != nil {
		t.opts.Metrics.RecordSuppressed(string(kind), reason)
	}
	t.opts.Logger.Debug("evidence suppressed",
		"conversation", t.id, "kind", kind, "reason", reason)
}
