package config

import "os"

// Defaults for generation parameters.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4000
	DefaultOutputRoot  = "output"
)

// Config is the explicit configuration value passed into each
// component's constructor. There is no global settings singleton.
type Config struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
	OutputRoot  string
	SkipPrompt  bool
}

// Default returns the built-in configuration with environment overrides
// applied (POMGEN_PROVIDER, POMGEN_MODEL, POMGEN_OUTPUT_DIR).
func Default() Config {
	cfg := Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		OutputRoot:  DefaultOutputRoot,
	}
	if v := os.Getenv("POMGEN_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("POMGEN_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("POMGEN_OUTPUT_DIR"); v != "" {
		cfg.OutputRoot = v
	}
	return cfg
}
