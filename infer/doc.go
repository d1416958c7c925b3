// Package infer derives the subscription plan and active model from
// coarse UI cues: button labels, profile-area text, model-picker text,
// and navigation text.
//
// Detection is an ordered list of pure predicate rules. Each rule either
// produces a value or abstains, and later rules only run when earlier
// ones abstained. This keeps the precedence explicit: direct evidence (a
// plan name in the profile area) can never be overridden by
// circumstantial evidence (the absence of an upgrade button).
//
// The heuristics are approximate by design. A visible "Pro" or "Ultra"
// substring is treated as a paid signal even though it can misclassify;
// the precedence rules, not the heuristics' real-world accuracy, are the
// contract.
package infer
