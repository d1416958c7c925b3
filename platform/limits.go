package platform

import "strings"

// Overhead holds the fixed token overheads attributed to platform
// scaffolding rather than user-authored content (the "OS tax").
type Overhead struct {
	// System covers system prompts and platform scaffolding.
	System int

	// Thinking covers reasoning/thinking content buffers.
	Thinking int

	// Tools covers tool and connector schemas.
	Tools int
}

// ModelOverride selects a fixed context limit when the active model name
// matches a substring, optionally gated on the current plan. Overrides
// take precedence over the plan table.
type ModelOverride struct {
	Platform Platform

	// Substring is matched case-insensitively against the model name.
	Substring string

	// RequiresPlan gates the override on a tier. PlanUnknown matches any.
	RequiresPlan Plan

	Limit int
}

// Rules is the deterministic table mapping (platform, plan, model) to a
// context-limit ceiling, plus the per-platform overheads and the endpoint
// fragments that mark a request URL as classification-relevant.
//
// Raw evidence never sets a context limit directly; it always goes
// through this table.
type Rules struct {
	// Limits maps platform and plan to the context ceiling in tokens.
	Limits map[Platform]map[Plan]int

	// FreeDefaults is the conservative fallback per platform, used when
	// the plan is unknown.
	FreeDefaults map[Platform]int

	// Overrides are checked in order before the plan table.
	Overrides []ModelOverride

	// Overheads holds the fixed per-platform token overheads.
	Overheads map[Platform]Overhead

	// Endpoints lists URL fragments identifying conversation API traffic.
	Endpoints map[Platform][]string
}

// DefaultRules returns the built-in table.
func DefaultRules() *Rules {
	return &Rules{
		Limits: map[Platform]map[Plan]int{
			ChatGPT: {
				PlanFree: 16000,
				PlanPlus: 32000,
				PlanPro:  128000,
				PlanTeam: 32000,
			},
			Claude: {
				PlanFree:       100000,
				PlanPro:        200000,
				PlanMax:        200000,
				PlanTeam:       500000,
				PlanEnterprise: 500000,
			},
			Gemini: {
				PlanFree:  32000,
				PlanPro:   1000000,
				PlanUltra: 1000000,
			},
		},
		FreeDefaults: map[Platform]int{
			ChatGPT: 16000,
			Claude:  100000,
			Gemini:  32000,
		},
		Overrides: []ModelOverride{
			// A Pro-suffixed model on an already-pro account unlocks the
			// platform's maximal ceiling.
			{Platform: ChatGPT, Substring: "pro", RequiresPlan: PlanPro, Limit: 2000000},
			// Thinking and codex variants carry their own fixed windows
			// independent of plan.
			{Platform: ChatGPT, Substring: "thinking", Limit: 196000},
			{Platform: ChatGPT, Substring: "codex", Limit: 272000},
		},
		Overheads: map[Platform]Overhead{
			ChatGPT: {System: 2300, Thinking: 1200, Tools: 800},
			Claude:  {System: 2800, Thinking: 2000, Tools: 1400},
			Gemini:  {System: 1500, Thinking: 1000, Tools: 600},
		},
		Endpoints: map[Platform][]string{
			ChatGPT: {"/backend-api/conversation", "/backend-api/f/conversation"},
			Claude:  {"/completion", "/retry_completion", "/chat_conversations"},
			Gemini:  {"StreamGenerate", "assistant.lamda", "BardChatUi"},
		},
	}
}

// ContextLimit resolves the context ceiling for a platform, plan, and
// model name. Model overrides win over the plan table; an unknown plan
// falls back to the platform's free-tier default.
func (r *Rules) ContextLimit(p Platform, plan Plan, model string) int {
	lower := strings.ToLower(model)
	if lower != "" {
		for _, o := range r.Overrides {
			if o.Platform != p {
				continue
			}
			if !strings.Contains(lower, o.Substring) {
				continue
			}
			if o.RequiresPlan != PlanUnknown && o.RequiresPlan != plan {
				continue
			}
			return o.Limit
		}
	}
	if limits, ok := r.Limits[p]; ok {
		if limit, ok := limits[plan]; ok {
			return limit
		}
	}
	return r.FreeDefaults[p]
}

// Overhead returns the fixed overheads for a platform.
func (r *Rules) Overhead(p Platform) Overhead {
	return r.Overheads[p]
}

// RelevantURL reports whether a request URL carries conversation traffic
// worth classifying. Irrelevant traffic (ads, telemetry) must never reach
// the classifier.
func (r *Rules) RelevantURL(p Platform, url string) bool {
	for _, fragment := range r.Endpoints[p] {
		if strings.Contains(url, fragment) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so callers can apply overrides without
// mutating the shared default table.
func (r *Rules) Clone() *Rules {
	clone := &Rules{
		Limits:       make(map[Platform]map[Plan]int, len(r.Limits)),
		FreeDefaults: make(map[Platform]int, len(r.FreeDefaults)),
		Overrides:    append([]ModelOverride(nil), r.Overrides...),
		Overheads:    make(map[Platform]Overhead, len(r.Overheads)),
		Endpoints:    make(map[Platform][]string, len(r.Endpoints)),
	}
	for p, limits := range r.Limits {
		m := make(map[Plan]int, len(limits))
		for plan, limit := range limits {
			m[plan] = limit
		}
		clone.Limits[p] = m
	}
	for p, limit := range r.FreeDefaults {
		clone.FreeDefaults[p] = limit
	}
	for p, o := range r.Overheads {
		clone.Overheads[p] = o
	}
	for p, endpoints := range r.Endpoints {
		clone.Endpoints[p] = append([]string(nil), endpoints...)
	}
	return clone
}

var defaultRules = DefaultRules()

// Default returns the shared built-in rule table.
func Default() *Rules {
	return defaultRules
}

// ContextLimit resolves a context ceiling using the default table.
func ContextLimit(p Platform, plan Plan, model string) int {
	return defaultRules.ContextLimit(p, plan, model)
}

// SystemOverhead returns the default system overhead for a platform.
func SystemOverhead(p Platform) int {
	return defaultRules.Overhead(p).System
}

// RelevantURL tests a URL against the default endpoint fragments.
func RelevantURL(p Platform, url string) bool {
	return defaultRules.RelevantURL(p, url)
}
