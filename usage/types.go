package usage

import (
	"github.com/ctxmeter/ctxmeter/platform"
	"github.com/ctxmeter/ctxmeter/tokens"
)

// Kind names an evidence source. Kinds double as the trust ordering:
// network > ui > text.
type Kind string

// Evidence kinds.
const (
	KindText    Kind = "text"
	KindNetwork Kind = "network"
	KindUI      Kind = "ui"
)

// Update is a candidate evidence update proposed to a Tracker. Updates
// are consumed once and discarded; the Tracker decides whether each one
// is applied or suppressed.
type Update interface {
	Kind() Kind
}

// TextEstimate is a low-trust update derived from visible conversation
// text. Chars is the rendered character count of the conversation.
type TextEstimate struct {
	Chars int
}

// Kind implements Update.
func (TextEstimate) Kind() Kind { return KindText }

// NetworkUsage is a high-trust update extracted from an intercepted
// network payload. Zero-valued token fields mean the payload did not
// carry that count.
type NetworkUsage struct {
	// ModelID is the wire-format model identifier, if present.
	ModelID string

	InputTokens  int
	OutputTokens int
	TotalTokens  int

	// Thinking reports reasoning/thinking content in the payload.
	Thinking bool

	// ToolUse reports tool or function-call content in the payload.
	ToolUse bool
}

// Kind implements Update.
func (NetworkUsage) Kind() Kind { return KindNetwork }

// Total returns the authoritative token count carried by the payload,
// or 0 when it carried none.
func (n NetworkUsage) Total() int {
	if n.TotalTokens > 0 {
		return n.TotalTokens
	}
	return n.InputTokens + n.OutputTokens
}

// UISignal is a medium-trust update from page cues: an inferred plan
// and/or model name. Zero values mean the cue was absent.
type UISignal struct {
	Plan      platform.Plan
	ModelName string
}

// Kind implements Update.
func (UISignal) Kind() Kind { return KindUI }

// Segment names for the usage breakdown.
const (
	SegmentSystem       = "system"
	SegmentTools        = "tools"
	SegmentThinking     = "thinking"
	SegmentConversation = "conversation"
)

// Segments breaks the estimate into categories. The invariant
// total == Sum() holds for every state a Tracker emits.
type Segments struct {
	System       int `json:"system"`
	Tools        int `json:"tools"`
	Thinking     int `json:"thinking"`
	Conversation int `json:"conversation"`
}

// Sum returns the total across all segments.
func (s Segments) Sum() int {
	return s.System + s.Tools + s.Thinking + s.Conversation
}

// Map returns the breakdown keyed by segment name.
func (s Segments) Map() map[string]int {
	return map[string]int{
		SegmentSystem:       s.System,
		SegmentTools:        s.Tools,
		SegmentThinking:     s.Thinking,
		SegmentConversation: s.Conversation,
	}
}

// Snapshot is the reconciled state handed to the renderer after every
// applied merge or reset. The renderer performs no further validation.
type Snapshot struct {
	Conversation string            `json:"conversation"`
	Platform     platform.Platform `json:"platform"`
	Plan         platform.Plan     `json:"plan,omitempty"`
	ModelID      string            `json:"model_id,omitempty"`
	ModelName    string            `json:"model_name,omitempty"`
	ContextLimit int               `json:"context_limit"`
	Total        int               `json:"total"`
	Segments     Segments          `json:"segments"`
}

// Capacity relates the snapshot's total to its context limit, for
// remaining-space and warning-threshold readouts.
func (s Snapshot) Capacity() tokens.Capacity {
	return tokens.Capacity{Limit: s.ContextLimit, Used: s.Total}
}

// EmitFunc receives snapshots. Called synchronously after each applied
// merge or reset.
type EmitFunc func(Snapshot)
