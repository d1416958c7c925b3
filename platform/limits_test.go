package platform

import "testing"

func TestContextLimit(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		plan     Plan
		model    string
		expected int
	}{
		{
			name:     "gemini unknown plan uses free default",
			platform: Gemini,
			plan:     PlanUnknown,
			expected: 32000,
		},
		{
			name:     "chatgpt free",
			platform: ChatGPT,
			plan:     PlanFree,
			expected: 16000,
		},
		{
			name:     "chatgpt plus",
			platform: ChatGPT,
			plan:     PlanPlus,
			expected: 32000,
		},
		{
			name:     "chatgpt pro with pro model unlocks max ceiling",
			platform: ChatGPT,
			plan:     PlanPro,
			model:    "GPT-5 Pro",
			expected: 2000000,
		},
		{
			name:     "pro model on plus plan stays on plan table",
			platform: ChatGPT,
			plan:     PlanPlus,
			model:    "GPT-5 Pro",
			expected: 32000,
		},
		{
			name:     "thinking model override is plan independent",
			platform: ChatGPT,
			plan:     PlanFree,
			model:    "GPT-5 Thinking",
			expected: 196000,
		},
		{
			name:     "codex model override",
			platform: ChatGPT,
			plan:     PlanPlus,
			model:    "gpt-5.1-codex",
			expected: 272000,
		},
		{
			name:     "claude pro",
			platform: Claude,
			plan:     PlanPro,
			model:    "Claude Sonnet",
			expected: 200000,
		},
		{
			name:     "claude unknown plan",
			platform: Claude,
			plan:     PlanUnknown,
			expected: 100000,
		},
		{
			name:     "gemini pro plan",
			platform: Gemini,
			plan:     PlanPro,
			model:    "Gemini 2.5 Flash",
			expected: 1000000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContextLimit(tt.platform, tt.plan, tt.model)
			if got != tt.expected {
				t.Errorf("ContextLimit(%q, %q, %q) = %d, expected %d",
					tt.platform, tt.plan, tt.model, got, tt.expected)
			}
		})
	}
}

func TestRelevantURL(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		url      string
		expected bool
	}{
		{
			name:     "chatgpt conversation endpoint",
			platform: ChatGPT,
			url:      "https://chatgpt.com/backend-api/conversation",
			expected: true,
		},
		{
			name:     "chatgpt telemetry is ignored",
			platform: ChatGPT,
			url:      "https://chatgpt.com/ces/v1/t",
			expected: false,
		},
		{
			name:     "claude completion endpoint",
			platform: Claude,
			url:      "https://claude.ai/api/organizations/x/chat_conversations/y/completion",
			expected: true,
		},
		{
			name:     "gemini stream endpoint",
			platform: Gemini,
			url:      "https://gemini.google.com/_/BardChatUi/data/assistant.lamda.BardFrontendService/StreamGenerate",
			expected: true,
		},
		{
			name:     "ad traffic is ignored",
			platform: Gemini,
			url:      "https://doubleclick.net/pixel",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelevantURL(tt.platform, tt.url)
			if got != tt.expected {
				t.Errorf("RelevantURL(%q, %q) = %v, expected %v", tt.platform, tt.url, got, tt.expected)
			}
		})
	}
}

func TestOverheads_AllPlatformsPositive(t *testing.T) {
	for _, p := range []Platform{ChatGPT, Claude, Gemini} {
		o := Default().Overhead(p)
		if o.System <= 0 || o.Thinking <= 0 || o.Tools <= 0 {
			t.Errorf("overheads for %q should be positive, got %+v", p, o)
		}
	}
}

func TestRules_Clone(t *testing.T) {
	clone := Default().Clone()
	clone.Limits[ChatGPT][PlanFree] = 1
	clone.FreeDefaults[Gemini] = 1

	if Default().Limits[ChatGPT][PlanFree] == 1 {
		t.Error("mutating a clone must not affect the default table")
	}
	if Default().FreeDefaults[Gemini] == 1 {
		t.Error("mutating clone defaults must not affect the default table")
	}
}
