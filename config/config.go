// Package config provides loading and validation of toolchat.yaml configuration files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/tool"
)

// FileName is the configuration file looked up in directories.
const FileName = "toolchat.yaml"

// DefaultSystemPrompt seeds every conversation unless overridden.
const DefaultSystemPrompt = `You are a helpful assistant.
You help architects working on a specification for a construction project. Assume that the user is UK based
and works with modern tools and BIM.
You can browse websites to find information.`

// ErrNotFound is returned when no configuration file exists at or above a directory.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config represents a toolchat.yaml configuration file.
type Config struct {
	Model  ModelConfig  `yaml:"model"`
	Agent  AgentConfig  `yaml:"agent"`
	Tools  ToolsConfig  `yaml:"tools"`
	Log    LogConfig    `yaml:"log"`
	Events EventsConfig `yaml:"events"`
}

// ModelConfig selects the chat completion service and its sampling settings.
type ModelConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url,omitempty"`

	// APIKey is usually left empty and provided through OPENAI_API_KEY.
	APIKey string `yaml:"api_key,omitempty"`

	Temperature      float64 `yaml:"temperature"`
	FrequencyPenalty float64 `yaml:"frequency_penalty"`
	PresencePenalty  float64 `yaml:"presence_penalty"`

	// RequestTimeout bounds a whole streamed completion (e.g. "2m").
	// Empty means no timeout.
	RequestTimeout string `yaml:"request_timeout,omitempty"`
}

// AgentConfig controls the conversation loop.
type AgentConfig struct {
	SystemPrompt  string `yaml:"system_prompt"`
	MaxRoundTrips int    `yaml:"max_round_trips"`
	EchoLabel     string `yaml:"echo_label"`
}

// ToolsConfig configures the built-in tools.
type ToolsConfig struct {
	Workspace         string `yaml:"workspace"`
	Timeout           string `yaml:"timeout"`
	SearchLimit       int    `yaml:"search_limit,omitempty"`
	ExchangeAccessKey string `yaml:"exchange_access_key,omitempty"`

	// Policies maps a tool name, or "*" for every tool, to a CEL expression
	// over `tool` and `args` that must evaluate to true for a call to run.
	Policies map[string]string `yaml:"policies,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// EventsConfig configures publication of turn events.
type EventsConfig struct {
	// RedisURL enables the Redis sink when set.
	RedisURL string `yaml:"redis_url,omitempty"`
	Channel  string `yaml:"channel,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Model: ModelConfig{
			Name:             "gpt-4o",
			Temperature:      0.1,
			FrequencyPenalty: 0.0,
			PresencePenalty:  0.6,
		},
		Agent: AgentConfig{
			SystemPrompt:  DefaultSystemPrompt,
			MaxRoundTrips: 5,
			EchoLabel:     "AI: ",
		},
		Tools: ToolsConfig{
			Workspace: ".",
			Timeout:   "30s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// GetRequestTimeout parses the model request timeout.
// Returns zero if not set or invalid.
func (m *ModelConfig) GetRequestTimeout() time.Duration {
	if m == nil || m.RequestTimeout == "" {
		return 0
	}
	d, err := time.ParseDuration(m.RequestTimeout)
	if err != nil {
		return 0
	}
	return d
}

// GetTimeout parses the tool timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (t *ToolsConfig) GetTimeout() time.Duration {
	if t == nil || t.Timeout == "" {
		return 30 * time.Second
	}
	d, err := time.ParseDuration(t.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SlogLevel returns the configured level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads and parses a toolchat.yaml file from the given path.
// If the path is a directory, it looks for toolchat.yaml or toolchat.yml in that directory.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath, err = find(path)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func find(dir string) (string, error) {
	for _, name := range []string{FileName, "toolchat.yml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// LoadFromDir searches for toolchat.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		if p, err := find(absDir); err == nil {
			return Load(p)
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("%w in %s or parent directories", ErrNotFound, dir)
		}
		absDir = parent
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvAPIKey    = "OPENAI_API_KEY"
	EnvModel     = "TOOLCHAT_MODEL"
	EnvBaseURL   = "TOOLCHAT_BASE_URL"
	EnvLogLevel  = "TOOLCHAT_LOG_LEVEL"
	EnvLogFormat = "TOOLCHAT_LOG_FORMAT"
	EnvRedisURL  = "TOOLCHAT_REDIS_URL"
	EnvWorkspace = "TOOLCHAT_WORKSPACE"
)

// ApplyEnv overrides file values with non-empty environment variables.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		env    string
		target *string
	}{
		{EnvAPIKey, &c.Model.APIKey},
		{EnvModel, &c.Model.Name},
		{EnvBaseURL, &c.Model.BaseURL},
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFormat, &c.Log.Format},
		{EnvRedisURL, &c.Events.RedisURL},
		{EnvWorkspace, &c.Tools.Workspace},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.target = v
		}
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Model.APIKey == "" {
		add("model.api_key is required (or set %s)", EnvAPIKey)
	}
	if c.Model.Name == "" {
		add("model.name is required")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		add("model.temperature must be between 0 and 2, got %v", c.Model.Temperature)
	}
	if c.Model.FrequencyPenalty < -2 || c.Model.FrequencyPenalty > 2 {
		add("model.frequency_penalty must be between -2 and 2, got %v", c.Model.FrequencyPenalty)
	}
	if c.Model.PresencePenalty < -2 || c.Model.PresencePenalty > 2 {
		add("model.presence_penalty must be between -2 and 2, got %v", c.Model.PresencePenalty)
	}
	if c.Model.RequestTimeout != "" {
		if _, err := time.ParseDuration(c.Model.RequestTimeout); err != nil {
			add("model.request_timeout: %v", err)
		}
	}
	if c.Agent.MaxRoundTrips < 1 {
		add("agent.max_round_trips must be positive, got %d", c.Agent.MaxRoundTrips)
	}
	if c.Tools.Timeout != "" {
		if d, err := time.ParseDuration(c.Tools.Timeout); err != nil || d <= 0 {
			add("tools.timeout must be a positive duration, got %q", c.Tools.Timeout)
		}
	}
	if c.Tools.SearchLimit < 0 {
		add("tools.search_limit must not be negative, got %d", c.Tools.SearchLimit)
	}
	if len(c.Tools.Policies) > 0 {
		if _, err := tool.NewPolicy(c.Tools.Policies); err != nil {
			add("tools.policies: %v", err)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		add("log.format must be text or json, got %q", c.Log.Format)
	}

	if len(errs) == 0 {
		return nil
	}
	return toolchat.NewConfigurationError("Config.Validate",
		fmt.Errorf("%w: %w", toolchat.ErrInvalidConfig, errors.Join(errs...)))
}
