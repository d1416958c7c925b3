// Package classify turns raw intercepted network payloads into usage
// evidence: a model identifier, authoritative token counts, and flags
// for reasoning and tool-use content.
//
// Payloads are scanned as newline-delimited event frames following the
// SSE convention ("data:" prefixes, "[DONE]" end-markers, bare JSON
// lines). Token counts are normalized per platform: OpenAI-style
// prompt_tokens/completion_tokens, Anthropic-style
// input_tokens/output_tokens, and Gemini's usageMetadata, with the total
// computed as the sum when the platform does not supply one.
//
// The classifier is partial-failure tolerant: a malformed frame is
// skipped (logged at debug level at most) and the scan continues, so one
// bad frame never discards a good one later in the same payload. It is
// only meant to be invoked for URLs matching the platform's relevance
// predicate; irrelevant traffic is rejected up front to avoid false
// positives from ads and telemetry requests embedded in the host page.
package classify
