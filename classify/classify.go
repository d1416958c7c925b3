package classify

import (
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/ctxmeter/ctxmeter/platform"
	"github.com/ctxmeter/ctxmeter/usage"
)

// Classifier extracts usage evidence from intercepted network payloads.
type Classifier struct {
	rules *platform.Rules
	log   *slog.Logger
}

// New creates a classifier. A nil rules value uses the default table.
func New(rules *platform.Rules) *Classifier {
	if rules == nil {
		rules = platform.Default()
	}
	return &Classifier{rules: rules, log: slog.Default()}
}

// Classify scans a payload of newline-delimited event frames and
// extracts a NetworkUsage update. Returns false when the URL is not
// conversation traffic or the payload carries neither a model id nor
// usage counts.
//
// Individual malformed frames are skipped without aborting the scan: one
// bad frame must not discard a good one later in the same payload.
func (c *Classifier) Classify(p platform.Platform, rawURL string, payload []byte) (usage.NetworkUsage, bool) {
	if !c.rules.RelevantURL(p, rawURL) {
		return usage.NetworkUsage{}, false
	}

	var ev usage.NetworkUsage
	var sawUsage bool

	for _, line := range bytes.Split(payload, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		// SSE event-name lines carry no body.
		if bytes.HasPrefix(line, []byte("event:")) {
			continue
		}
		if bytes.HasPrefix(line, []byte("data:")) {
			line = bytes.TrimSpace(line[len("data:"):])
		}
		// Explicit stream end-marker.
		if len(line) == 0 || bytes.Equal(line, []byte("[DONE]")) {
			continue
		}

		var f frame
		if err := json.Unmarshal(line, &f); err != nil {
			c.log.Debug("skipping malformed frame", "platform", p, "error", err)
			continue
		}

		if model := f.modelID(); model != "" && ev.ModelID == "" {
			ev.ModelID = model
		}
		if in, out, total, ok := f.tokenCounts(p); ok {
			// Later frames carry the final counts; last one wins.
			ev.InputTokens, ev.OutputTokens, ev.TotalTokens = in, out, total
			sawUsage = true
		}
		if f.hasThinking() {
			ev.Thinking = true
		}
		if f.hasToolUse() {
			ev.ToolUse = true
		}
	}

	if ev.ModelID == "" && !sawUsage {
		return usage.NetworkUsage{}, false
	}
	return ev, true
}

var defaultClassifier = New(nil)

// Classify scans a payload using the default rule table.
func Classify(p platform.Platform, rawURL string, payload []byte) (usage.NetworkUsage, bool) {
	return defaultClassifier.Classify(p, rawURL, payload)
}

// usageBlock covers the token-count shapes across providers: OpenAI's
// prompt/completion naming and Anthropic's input/output naming.
type usageBlock struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
	InputTokens      int `json:"input_tokens"`
	OutputTokens     int `json:"output_tokens"`
}

type contentBlock struct {
	Type     string `json:"type"`
	Thinking string `json:"thinking"`
}

type delta struct {
	ReasoningContent string            `json:"reasoning_content"`
	ToolCalls        []json.RawMessage `json:"tool_calls"`
}

// frame is the superset of the streaming event shapes the three
// platforms emit. Absent fields simply stay zero.
type frame struct {
	Model    string      `json:"model"`
	Usage    *usageBlock `json:"usage"`
	Thinking string      `json:"thinking"`

	Message *struct {
		Model   string         `json:"model"`
		Usage   *usageBlock    `json:"usage"`
		Content []contentBlock `json:"content"`
	} `json:"message"`

	Choices []struct {
		Delta delta `json:"delta"`
	} `json:"choices"`

	UsageMetadata *struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
		ThoughtsTokenCount   int `json:"thoughtsTokenCount"`
	} `json:"usageMetadata"`
}

func (f *frame) modelID() string {
	if f.Model != "" {
		return f.Model
	}
	if f.Message != nil {
		return f.Message.Model
	}
	return ""
}

// tokenCounts normalizes the frame's usage fields for a platform.
// OpenAI-style payloads name them prompt/completion, Anthropic-style
// input/output, Gemini uses usageMetadata; the total is computed as
// their sum when the platform does not supply one directly.
func (f *frame) tokenCounts(p platform.Platform) (in, out, total int, ok bool) {
	if p == platform.Gemini {
		if m := f.UsageMetadata; m != nil && (m.PromptTokenCount > 0 || m.CandidatesTokenCount > 0 || m.TotalTokenCount > 0) {
			in, out, total = m.PromptTokenCount, m.CandidatesTokenCount, m.TotalTokenCount
			if total == 0 {
				total = in + out
			}
			return in, out, total, true
		}
		return 0, 0, 0, false
	}

	block := f.Usage
	if block == nil && f.Message != nil {
		block = f.Message.Usage
	}
	if block == nil {
		return 0, 0, 0, false
	}

	switch p {
	case platform.ChatGPT:
		in, out, total = block.PromptTokens, block.CompletionTokens, block.TotalTokens
		if in == 0 && out == 0 && total == 0 {
			// Some endpoints emit Anthropic-style names regardless.
			in, out = block.InputTokens, block.OutputTokens
		}
	default:
		in, out = block.InputTokens, block.OutputTokens
	}
	if total == 0 {
		total = in + out
	}
	if in == 0 && out == 0 && total == 0 {
		return 0, 0, 0, false
	}
	return in, out, total, true
}

func (f *frame) hasThinking() bool {
	if f.Thinking != "" {
		return true
	}
	if f.Message != nil {
		for _, block := range f.Message.Content {
			if block.Type == "thinking" || block.Thinking != "" {
				return true
			}
		}
	}
	for _, choice := range f.Choices {
		if choice.Delta.ReasoningContent != "" {
			return true
		}
	}
	if m := f.UsageMetadata; m != nil && m.ThoughtsTokenCount > 0 {
		return true
	}
	return false
}

func (f *frame) hasToolUse() bool {
	if f.Message != nil {
		for _, block := range f.Message.Content {
			if block.Type == "tool_use" {
				return true
			}
		}
	}
	for _, choice := range f.Choices {
		if len(choice.Delta.ToolCalls) > 0 {
			return true
		}
	}
	return false
}
