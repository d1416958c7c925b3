// Package usage is the estimation and state-reconciliation engine: it
// merges heterogeneous, noisy evidence about a conversation's token
// consumption into one consistent, non-flickering state.
//
// # Evidence and trust
//
// Three update kinds feed a Tracker, ranked by trust:
//
//   - NetworkUsage: authoritative token counts and model ids from
//     intercepted payloads (see the classify package).
//   - UISignal: plan and model names inferred from page cues (see the
//     infer package).
//   - TextEstimate: a character count of visible conversation text,
//     converted via the tokens package.
//
// A field set by higher-trust evidence is never overwritten by lower:
// once an authoritative total arrives, a smaller text estimate cannot
// drag the number back down, and within one conversation text-only
// updates never decrease the total at all. Text estimates are throttled
// to one evaluation per interval regardless of mutation bursts.
//
// # Lifecycle
//
// Store keys one Tracker per conversation context. A change in the
// observed page URL is a conversation boundary: the tracker resets its
// totals and segments while preserving platform, plan, and model. The
// first observed URL never fires a reset.
//
// # Failure semantics
//
// Nothing in this package errors. Evidence that cannot be applied is
// suppressed silently (optionally counted via the metrics package), and
// every reachable state is a usable, possibly zero, estimate.
package usage
