// Package replay reads NDJSON evidence capture files and feeds them
// through the classification pipeline into a usage store.
//
// A capture file records the evidence events a browsing session
// produced, one JSON object per line, in event order: context creation,
// visible-text lengths, intercepted network payloads, UI cues, and
// location changes. Replaying a capture reproduces the engine's
// reconciled state deterministically, which makes captures the unit of
// debugging: a misbehaving estimate gets captured once and replayed
// until fixed.
//
// Basic replay:
//
//	store := usage.NewStore(usage.Options{})
//	runner := replay.NewRunner(store, nil)
//	applied, err := runner.Run("session.ndjson")
//
// Live tailing with Follow uses fsnotify, falling back to polling.
package replay
