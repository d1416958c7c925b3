package infer

import (
	"strings"

	"github.com/ctxmeter/ctxmeter/platform"
)

// modelTerms maps picker substrings to canonical display names, most
// specific first (order matters: "gpt-5 pro" must win before "gpt-5").
var modelTerms = map[platform.Platform][]struct {
	substring string
	display   string
}{
	platform.ChatGPT: {
		{"gpt-5 pro", "GPT-5 Pro"},
		{"gpt-5 thinking", "GPT-5 Thinking"},
		{"codex", "Codex"},
		{"o3-pro", "o3-pro"},
		{"o3", "o3"},
		{"gpt-5", "GPT-5"},
		{"gpt-4", "GPT-4"},
	},
	platform.Claude: {
		{"opus", "Claude Opus"},
		{"sonnet", "Claude Sonnet"},
		{"haiku", "Claude Haiku"},
	},
	platform.Gemini: {
		{"2.5 pro", "Gemini 2.5 Pro"},
		{"1.5 pro", "Gemini 1.5 Pro"},
		{"ultra", "Gemini Ultra"},
		{"flash", "Gemini Flash"},
		{"pro", "Gemini Pro"},
	},
}

// Model infers the active model's display name from the picker text.
// Returns false when no known model name appears; the caller keeps its
// previous value.
func Model(p platform.Platform, c Cues) (string, bool) {
	if c.PickerText == "" {
		return "", false
	}
	for _, term := range modelTerms[p] {
		if containsFold(c.PickerText, term.substring) {
			return term.display, true
		}
	}
	return "", false
}

// DisplayName converts a wire-format model identifier (for example
// "claude-opus-4-20250514" or "gpt-5.1-codex") to its human-readable
// family name. Unrecognized identifiers are returned as-is.
func DisplayName(p platform.Platform, id string) string {
	lower := strings.ToLower(id)
	for _, term := range modelTerms[p] {
		if strings.Contains(lower, normalizeTerm(term.substring)) {
			return term.display
		}
	}
	return id
}

// normalizeTerm maps picker-style spacing to wire-style dashes so the
// same table serves both surfaces.
func normalizeTerm(term string) string {
	return strings.ReplaceAll(term, " ", "-")
}
