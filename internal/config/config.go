// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/scoring"
)

// Config represents the analyzer configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Evaluator
	APIKey            string  `json:"api_key,omitempty"`             // Gemini API key
	Model             string  `json:"model,omitempty"`               // Gemini model name
	Temperature       float32 `json:"temperature,omitempty"`         // Sampling temperature
	MaxTokens         int     `json:"max_tokens,omitempty"`          // Completion token cap
	CallTimeoutSecs   int     `json:"call_timeout_secs,omitempty"`   // Per-attempt timeout in seconds
	RetryMaxAttempts  int     `json:"retry_max_attempts,omitempty"`  // Total attempts including the first
	RetryBaseDelayMS  int     `json:"retry_base_delay_ms,omitempty"` // Delay before the first retry
	TokenBudget       int     `json:"token_budget,omitempty"`        // Estimated input token cap per call
	MaxInFlight       int     `json:"max_in_flight,omitempty"`       // Simultaneous evaluator calls
	RequestsPerSecond float64 `json:"requests_per_second,omitempty"` // Evaluator call pacing

	// Analysis
	Threshold float64 `json:"threshold,omitempty"` // Recommendation score threshold

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Behavior
	Verbose  bool `json:"verbose,omitempty"`   // Debug-level logging
	JSONLogs bool `json:"json_logs,omitempty"` // Structured JSON log output
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked after merging, not here.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("config error: 'max_tokens' must be non-negative")
	}
	if c.CallTimeoutSecs < 0 {
		return fmt.Errorf("config error: 'call_timeout_secs' must be non-negative")
	}
	if c.RetryMaxAttempts < 0 {
		return fmt.Errorf("config error: 'retry_max_attempts' must be non-negative")
	}
	if c.TokenBudget < 0 {
		return fmt.Errorf("config error: 'token_budget' must be non-negative")
	}
	if c.MaxInFlight < 0 {
		return fmt.Errorf("config error: 'max_in_flight' must be non-negative")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("config error: 'requests_per_second' must be non-negative")
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("config error: 'threshold' must be between 0 and 100")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flags always win for bool fields, so they are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.MaxTokens == 0 {
		result.MaxTokens = defaults.MaxTokens
	}
	if result.CallTimeoutSecs == 0 {
		result.CallTimeoutSecs = defaults.CallTimeoutSecs
	}
	if result.RetryMaxAttempts == 0 {
		result.RetryMaxAttempts = defaults.RetryMaxAttempts
	}
	if result.RetryBaseDelayMS == 0 {
		result.RetryBaseDelayMS = defaults.RetryBaseDelayMS
	}
	if result.TokenBudget == 0 {
		result.TokenBudget = defaults.TokenBudget
	}
	if result.MaxInFlight == 0 {
		result.MaxInFlight = defaults.MaxInFlight
	}
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if result.Threshold == 0 {
		result.Threshold = defaults.Threshold
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	base := llm.DefaultConfig()
	return Config{
		Model:             base.Model,
		Temperature:       base.Temperature,
		MaxTokens:         base.MaxTokens,
		CallTimeoutSecs:   int(base.CallTimeout / time.Second),
		RetryMaxAttempts:  base.Retry.MaxAttempts,
		RetryBaseDelayMS:  int(base.Retry.BaseDelay / time.Millisecond),
		TokenBudget:       base.TokenBudget,
		MaxInFlight:       base.MaxInFlight,
		RequestsPerSecond: base.RequestsPerSecond,
		Threshold:         scoring.DefaultThreshold,
		Port:              8080,
	}
}

// EvaluatorConfig maps the merged configuration onto the evaluator client
// configuration.
func (c *Config) EvaluatorConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.Temperature != 0 {
		cfg.Temperature = c.Temperature
	}
	if c.MaxTokens != 0 {
		cfg.MaxTokens = c.MaxTokens
	}
	if c.CallTimeoutSecs != 0 {
		cfg.CallTimeout = time.Duration(c.CallTimeoutSecs) * time.Second
	}
	if c.RetryMaxAttempts != 0 {
		cfg.Retry.MaxAttempts = c.RetryMaxAttempts
	}
	if c.RetryBaseDelayMS != 0 {
		cfg.Retry.BaseDelay = time.Duration(c.RetryBaseDelayMS) * time.Millisecond
	}
	if c.TokenBudget != 0 {
		cfg.TokenBudget = c.TokenBudget
	}
	if c.MaxInFlight != 0 {
		cfg.MaxInFlight = c.MaxInFlight
	}
	if c.RequestsPerSecond != 0 {
		cfg.RequestsPerSecond = c.RequestsPerSecond
	}
	return cfg
}
