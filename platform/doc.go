// Package platform defines the supported chat platforms, their
// subscription tiers, and the deterministic table that maps
// (platform, plan, model) to a context-limit ceiling.
//
// The ceiling is never taken from raw evidence. Evidence proposes a plan
// or model name; this package turns the combination into a limit:
//
//	limit := platform.ContextLimit(platform.ChatGPT, platform.PlanPro, "GPT-5 Pro")
//
// Precedence: model overrides (thinking/codex variants, pro-model on a
// pro account) beat the plan table, and an unknown plan falls back to the
// platform's conservative free-tier default.
//
// The package also carries the fixed per-platform token overheads (the
// "OS tax" of system prompts and tool scaffolding) and the endpoint
// fragments used to decide whether a request URL is conversation traffic
// at all. All tables live in a Rules value so operators can override them
// via the config package; the package-level functions use the shared
// default table.
package platform
