package infer

import (
	"strings"

	"github.com/ctxmeter/ctxmeter/platform"
)

// Cues carries the raw page-derived text a harvester scraped from coarse
// UI surfaces. Empty fields simply mean the surface was not found.
type Cues struct {
	// ButtonText is the text of prominent call-to-action buttons.
	ButtonText string

	// ProfileText is text from the account or profile area.
	ProfileText string

	// PickerText is the model selector's visible text.
	PickerText string

	// NavText is sidebar/navigation text.
	NavText string
}

// planRule is one heuristic in the precedence chain. A rule either
// produces a plan or abstains; later rules run only if earlier ones
// abstained, so stronger evidence can never be overridden by weaker.
type planRule struct {
	name  string
	apply func(p platform.Platform, c Cues) (platform.Plan, bool)
}

// planRules in precedence order. See Plan.
var planRules = []planRule{
	{name: "upgrade-cta", apply: upgradeCTA},
	{name: "profile-plan-name", apply: profilePlanName},
	{name: "premium-model", apply: premiumModel},
	{name: "nav-tier", apply: navTier},
}

// Plan infers the subscription tier from UI cues.
//
// Heuristics, strongest first:
//  1. A visible upgrade call-to-action means free (paid users are not
//     shown upgrade prompts).
//  2. A plan name in the profile area names the tier directly.
//  3. A premium model in the picker implies the entry paid tier.
//  4. Absent any upgrade prompt, a tier named in navigation text counts.
//
// Returns false when no rule matches; the caller keeps its previous or
// default value. Inference is approximate by design and never errors.
func Plan(p platform.Platform, c Cues) (platform.Plan, bool) {
	for _, rule := range planRules {
		if plan, ok := rule.apply(p, c); ok {
			return plan, true
		}
	}
	return platform.PlanUnknown, false
}

func upgradeCTA(_ platform.Platform, c Cues) (platform.Plan, bool) {
	if containsFold(c.ButtonText, "upgrade") {
		return platform.PlanFree, true
	}
	return platform.PlanUnknown, false
}

// planTerms maps visible substrings to tiers, most specific first so that
// e.g. "Max" wins before a stray "Pro" inside longer marketing copy.
var planTerms = map[platform.Platform][]struct {
	substring string
	plan      platform.Plan
}{
	platform.ChatGPT: {
		{"pro", platform.PlanPro},
		{"plus", platform.PlanPlus},
		{"team", platform.PlanTeam},
		{"free", platform.PlanFree},
	},
	platform.Claude: {
		{"enterprise", platform.PlanEnterprise},
		{"team", platform.PlanTeam},
		{"max", platform.PlanMax},
		{"pro", platform.PlanPro},
		{"free", platform.PlanFree},
	},
	platform.Gemini: {
		{"ultra", platform.PlanUltra},
		{"advanced", platform.PlanPro},
		{"pro", platform.PlanPro},
		{"free", platform.PlanFree},
	},
}

func profilePlanName(p platform.Platform, c Cues) (platform.Plan, bool) {
	return matchPlanTerms(p, c.ProfileText)
}

// premiumTerms are model-picker substrings only shown to paying accounts.
var premiumTerms = map[platform.Platform][]string{
	platform.ChatGPT: {"gpt-5 pro", "o1-pro", "o3-pro"},
	platform.Claude:  {"opus"},
	platform.Gemini:  {"ultra", "2.5 pro", "1.5 pro"},
}

func premiumModel(p platform.Platform, c Cues) (platform.Plan, bool) {
	for _, term := range premiumTerms[p] {
		if containsFold(c.PickerText, term) {
			return platform.EntryPaidPlan(p), true
		}
	}
	return platform.PlanUnknown, false
}

func navTier(p platform.Platform, c Cues) (platform.Plan, bool) {
	// Circumstantial: only trustworthy when no upgrade prompt is shown.
	if containsFold(c.ButtonText, "upgrade") {
		return platform.PlanUnknown, false
	}
	return matchPlanTerms(p, c.NavText)
}

func matchPlanTerms(p platform.Platform, text string) (platform.Plan, bool) {
	if text == "" {
		return platform.PlanUnknown, false
	}
	for _, term := range planTerms[p] {
		if containsFold(text, term.substring) {
			return term.plan, true
		}
	}
	return platform.PlanUnknown, false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
