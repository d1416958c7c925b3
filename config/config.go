package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ctxmeter/ctxmeter/platform"
	"github.com/ctxmeter/ctxmeter/tokens"
	"github.com/ctxmeter/ctxmeter/usage"
)

// PlatformConfig overrides the built-in tables for one platform.
// Zero/absent fields keep the defaults.
type PlatformConfig struct {
	// Limits maps plan names to context ceilings in tokens.
	Limits map[string]int `yaml:"limits" toml:"limits"`

	// FreeDefault overrides the unknown-plan fallback ceiling.
	FreeDefault int `yaml:"free_default" toml:"free_default"`

	SystemOverhead   int `yaml:"system_overhead" toml:"system_overhead"`
	ThinkingOverhead int `yaml:"thinking_overhead" toml:"thinking_overhead"`
	ToolOverhead     int `yaml:"tool_overhead" toml:"tool_overhead"`

	// Endpoints replaces the URL fragments marking conversation traffic.
	Endpoints []string `yaml:"endpoints" toml:"endpoints"`
}

// Config tunes the estimation engine. All fields are optional; the zero
// value behaves identically to the built-in defaults.
type Config struct {
	// ThrottleMS is the text-estimate throttle window in milliseconds.
	ThrottleMS int `yaml:"throttle_ms" toml:"throttle_ms"`

	// MinSignalTokens is the empty-page guard threshold.
	MinSignalTokens int `yaml:"min_signal_tokens" toml:"min_signal_tokens"`

	// CharsPerToken overrides the estimation ratio.
	CharsPerToken float64 `yaml:"chars_per_token" toml:"chars_per_token"`

	// Platforms overrides tables per platform, keyed by platform name.
	Platforms map[string]PlatformConfig `yaml:"platforms" toml:"platforms"`
}

// Default returns a config equivalent to the built-in defaults.
func Default() *Config {
	return &Config{}
}

// Load reads a config file, YAML or TOML by extension. A missing file is
// not an error: estimation must work unconfigured, so Load returns the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse toml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that would break the engine's invariants.
func (c *Config) Validate() error {
	if c.ThrottleMS < 0 {
		return fmt.Errorf("throttle_ms must not be negative, got %d", c.ThrottleMS)
	}
	if c.CharsPerToken < 0 {
		return fmt.Errorf("chars_per_token must not be negative, got %v", c.CharsPerToken)
	}
	for name, pc := range c.Platforms {
		if !platform.Platform(name).Known() {
			return fmt.Errorf("unknown platform %q in config", name)
		}
		for plan, limit := range pc.Limits {
			if !platform.ValidPlan(platform.Platform(name), platform.Plan(plan)) {
				return fmt.Errorf("unknown plan %q for platform %q", plan, name)
			}
			if limit <= 0 {
				return fmt.Errorf("limit for %s/%s must be positive, got %d", name, plan, limit)
			}
		}
	}
	return nil
}

// Rules materializes the override tables on top of the defaults.
func (c *Config) Rules() *platform.Rules {
	rules := platform.DefaultRules()

	for name, pc := range c.Platforms {
		p := platform.Platform(name)

		for plan, limit := range pc.Limits {
			rules.Limits[p][platform.Plan(plan)] = limit
		}
		if pc.FreeDefault > 0 {
			rules.FreeDefaults[p] = pc.FreeDefault
		}

		overhead := rules.Overheads[p]
		if pc.SystemOverhead > 0 {
			overhead.System = pc.SystemOverhead
		}
		if pc.ThinkingOverhead > 0 {
			overhead.Thinking = pc.ThinkingOverhead
		}
		if pc.ToolOverhead > 0 {
			overhead.Tools = pc.ToolOverhead
		}
		rules.Overheads[p] = overhead

		if len(pc.Endpoints) > 0 {
			rules.Endpoints[p] = append([]string(nil), pc.Endpoints...)
		}
	}

	return rules
}

// ThrottleInterval returns the configured throttle window, or zero when
// unset (callers fall back to the engine default).
func (c *Config) ThrottleInterval() time.Duration {
	return time.Duration(c.ThrottleMS) * time.Millisecond
}

// TrackerOptions assembles usage.Options from the config. The emit
// callback and instrumentation stay with the caller.
func (c *Config) TrackerOptions() usage.Options {
	opts := usage.Options{
		Rules:            c.Rules(),
		ThrottleInterval: c.ThrottleInterval(),
		MinSignalTokens:  c.MinSignalTokens,
	}
	if c.CharsPerToken > 0 {
		opts.Counter = tokens.NewEstimatingCounterWithRatio(c.CharsPerToken)
	}
	return opts
}
