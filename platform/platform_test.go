package platform

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected Platform
		ok       bool
	}{
		{name: "chatgpt.com", host: "chatgpt.com", expected: ChatGPT, ok: true},
		{name: "legacy openai host", host: "chat.openai.com", expected: ChatGPT, ok: true},
		{name: "claude", host: "claude.ai", expected: Claude, ok: true},
		{name: "gemini", host: "gemini.google.com", expected: Gemini, ok: true},
		{name: "case insensitive", host: "CLAUDE.AI", expected: Claude, ok: true},
		{name: "unsupported", host: "example.com", ok: false},
		{name: "empty", host: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.host)
			if ok != tt.ok {
				t.Fatalf("Detect(%q) ok = %v, expected %v", tt.host, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Detect(%q) = %q, expected %q", tt.host, got, tt.expected)
			}
		})
	}
}

func TestPlatform_Known(t *testing.T) {
	for _, p := range []Platform{ChatGPT, Claude, Gemini} {
		if !p.Known() {
			t.Errorf("%q should be known", p)
		}
	}
	if Platform("copilot").Known() {
		t.Error("unsupported platform should not be known")
	}
}

func TestValidPlan(t *testing.T) {
	tests := []struct {
		platform Platform
		plan     Plan
		expected bool
	}{
		{ChatGPT, PlanPlus, true},
		{ChatGPT, PlanPro, true},
		{ChatGPT, PlanMax, false},
		{Claude, PlanMax, true},
		{Claude, PlanPlus, false},
		{Gemini, PlanUltra, true},
		{Gemini, PlanTeam, false},
		{ChatGPT, PlanUnknown, false},
	}

	for _, tt := range tests {
		got := ValidPlan(tt.platform, tt.plan)
		if got != tt.expected {
			t.Errorf("ValidPlan(%q, %q) = %v, expected %v", tt.platform, tt.plan, got, tt.expected)
		}
	}
}

func TestPlan_Paid(t *testing.T) {
	if PlanFree.Paid() {
		t.Error("free should not be paid")
	}
	if PlanUnknown.Paid() {
		t.Error("unknown should not be paid")
	}
	if !PlanPro.Paid() {
		t.Error("pro should be paid")
	}
}

func TestEntryPaidPlan(t *testing.T) {
	tests := []struct {
		platform Platform
		expected Plan
	}{
		{ChatGPT, PlanPlus},
		{Claude, PlanPro},
		{Gemini, PlanPro},
	}
	for _, tt := range tests {
		if got := EntryPaidPlan(tt.platform); got != tt.expected {
			t.Errorf("EntryPaidPlan(%q) = %q, expected %q", tt.platform, got, tt.expected)
		}
	}
}
