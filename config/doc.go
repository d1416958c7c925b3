// Package config loads optional operator overrides for the estimation
// engine: throttle window, estimation ratio, and the per-platform
// context-limit and overhead tables.
//
// Files are YAML or TOML, chosen by extension. Everything is optional; a
// missing file or zero value falls back to the built-in defaults, so the
// engine always starts.
package config
