// Package ctxmeter estimates how much of an AI chat assistant's context
// window a conversation has consumed, using only the signals observable
// from inside the page: rendered text, intercepted network payloads, and
// coarse UI cues such as plan badges and model pickers.
//
// ctxmeter is a toolkit designed to be imported à la carte. Each subpackage
// can be used independently:
//
//   - tokens: character-ratio token estimation
//   - platform: platform/plan enums, context-limit tables, endpoint predicates
//   - classify: network payload classification into usage evidence
//   - infer: plan and model inference from UI cues
//   - usage: the per-conversation usage state machine and keyed store
//   - config: optional YAML/TOML overrides for tables and tuning constants
//   - metrics: Prometheus instrumentation for merge decisions
//   - replay: capture-file adapter for feeding recorded evidence offline
//
// # Quick Start
//
// Track a conversation:
//
//	store := usage.NewStore(usage.Options{Emit: render})
//	t := store.Create("tab-1", platform.ChatGPT)
//	t.Apply(usage.TextEstimate{Chars: 4800})
//
// Classify a streaming payload:
//
//	ev, ok := classify.Classify(platform.Claude, url, payload)
//	if ok {
//	    t.Apply(ev)
//	}
//
// # Design Philosophy
//
// ctxmeter trades precision for availability. It never fails: malformed
// payloads are skipped, ambiguous cues fall back to defaults, and every
// code path yields a usable (possibly zero) estimate. Evidence sources are
// ranked by trust, and a field is only overwritten by evidence of
// equal-or-higher trust, so the reported number refines without flickering.
package ctxmeter
