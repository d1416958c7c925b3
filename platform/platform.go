package platform

import "strings"

// Platform identifies a supported chat assistant host.
type Platform string

// Supported platforms.
const (
	ChatGPT Platform = "chatgpt"
	Claude  Platform = "claude"
	Gemini  Platform = "gemini"
)

// Known returns true if the platform is one of the supported values.
func (p Platform) Known() bool {
	switch p {
	case ChatGPT, Claude, Gemini:
		return true
	default:
		return false
	}
}

// Detect maps a page hostname to its platform.
// Returns false for hosts that are not a supported assistant.
func Detect(host string) (Platform, bool) {
	host = strings.ToLower(host)
	switch {
	case strings.Contains(host, "chatgpt.com"), strings.Contains(host, "chat.openai.com"):
		return ChatGPT, true
	case strings.Contains(host, "claude.ai"):
		return Claude, true
	case strings.Contains(host, "gemini.google.com"):
		return Gemini, true
	default:
		return "", false
	}
}

// Plan represents a subscription tier.
// The zero value means the plan has not been inferred yet.
type Plan string

// Subscription tiers across platforms. Each platform uses a subset,
// see Plans.
const (
	PlanUnknown    Plan = ""
	PlanFree       Plan = "free"
	PlanPlus       Plan = "plus"
	PlanPro        Plan = "pro"
	PlanTeam       Plan = "team"
	PlanMax        Plan = "max"
	PlanEnterprise Plan = "enterprise"
	PlanUltra      Plan = "ultra"
)

// Paid returns true for any tier above free.
func (p Plan) Paid() bool {
	return p != PlanUnknown && p != PlanFree
}

// Plans returns the closed set of tiers a platform offers.
func Plans(p Platform) []Plan {
	switch p {
	case ChatGPT:
		return []Plan{PlanFree, PlanPlus, PlanPro, PlanTeam}
	case Claude:
		return []Plan{PlanFree, PlanPro, PlanMax, PlanTeam, PlanEnterprise}
	case Gemini:
		return []Plan{PlanFree, PlanPro, PlanUltra}
	default:
		return nil
	}
}

// ValidPlan returns true if the plan belongs to the platform's tier set.
func ValidPlan(p Platform, plan Plan) bool {
	for _, known := range Plans(p) {
		if known == plan {
			return true
		}
	}
	return false
}

// EntryPaidPlan returns the platform's lowest paid tier. Used when
// circumstantial evidence (a premium model in the picker) implies a paid
// account without naming the tier.
func EntryPaidPlan(p Platform) Plan {
	switch p {
	case ChatGPT:
		return PlanPlus
	case Claude:
		return PlanPro
	case Gemini:
		return PlanPro
	default:
		return PlanUnknown
	}
}
