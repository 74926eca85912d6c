package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/toolchat"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "gpt-4o", c.Model.Name)
	assert.InDelta(t, 0.1, c.Model.Temperature, 1e-9)
	assert.InDelta(t, 0.0, c.Model.FrequencyPenalty, 1e-9)
	assert.InDelta(t, 0.6, c.Model.PresencePenalty, 1e-9)
	assert.Equal(t, 5, c.Agent.MaxRoundTrips)
	assert.Equal(t, "AI: ", c.Agent.EchoLabel)
	assert.Contains(t, c.Agent.SystemPrompt, "architects")
	assert.Equal(t, 30*time.Second, c.Tools.GetTimeout())
	assert.Equal(t, slog.LevelInfo, c.Log.SlogLevel())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, "custom.yaml", `
model:
  name: gpt-4o-mini
  temperature: 0
agent:
  max_round_trips: 3
tools:
  timeout: 5s
  policies:
    deleteFile: "false"
    "*": "true"
log:
  level: debug
`)

	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", c.Model.Name)
	assert.InDelta(t, 0.0, c.Model.Temperature, 1e-9)
	assert.InDelta(t, 0.6, c.Model.PresencePenalty, 1e-9, "unset values keep defaults")
	assert.Equal(t, 3, c.Agent.MaxRoundTrips)
	assert.Equal(t, DefaultSystemPrompt, c.Agent.SystemPrompt)
	assert.Equal(t, 5*time.Second, c.Tools.GetTimeout())
	assert.Equal(t, map[string]string{"deleteFile": "false", "*": "true"}, c.Tools.Policies)
	assert.Equal(t, slog.LevelDebug, c.Log.SlogLevel())
	assert.Equal(t, "text", c.Log.Format)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "toolchat.yml", "model:\n  name: from-yml\n")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yml", c.Model.Name)

	writeConfig(t, dir, FileName, "model:\n  name: from-yaml\n")
	c, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", c.Model.Name)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNotFound)

	dir := t.TempDir()
	p := writeConfig(t, dir, FileName, "model: [unclosed")
	_, err = Load(p)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadFromDir(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, FileName, "agent:\n  max_round_trips: 7\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c, err := LoadFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Agent.MaxRoundTrips)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "sk-test")
	t.Setenv(EnvModel, "gpt-4.1")
	t.Setenv(EnvBaseURL, "http://localhost:8080/v1")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvWorkspace, "/srv/work")

	c := Default()
	c.ApplyEnv()

	assert.Equal(t, "sk-test", c.Model.APIKey)
	assert.Equal(t, "gpt-4.1", c.Model.Name)
	assert.Equal(t, "http://localhost:8080/v1", c.Model.BaseURL)
	assert.Equal(t, slog.LevelWarn, c.Log.SlogLevel())
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, "redis://localhost:6379/0", c.Events.RedisURL)
	assert.Equal(t, "/srv/work", c.Tools.Workspace)
}

func TestApplyEnvIgnoresEmpty(t *testing.T) {
	t.Setenv(EnvModel, "")

	c := Default()
	c.ApplyEnv()
	assert.Equal(t, "gpt-4o", c.Model.Name)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Model.APIKey = "sk-test"
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.Model.APIKey = "" }, wantErr: "api_key"},
		{name: "missing model", mutate: func(c *Config) { c.Model.Name = "" }, wantErr: "model.name"},
		{name: "temperature", mutate: func(c *Config) { c.Model.Temperature = 3 }, wantErr: "temperature"},
		{name: "presence penalty", mutate: func(c *Config) { c.Model.PresencePenalty = -2.5 }, wantErr: "presence_penalty"},
		{name: "round trips", mutate: func(c *Config) { c.Agent.MaxRoundTrips = 0 }, wantErr: "max_round_trips"},
		{name: "tool timeout", mutate: func(c *Config) { c.Tools.Timeout = "soon" }, wantErr: "tools.timeout"},
		{name: "request timeout", mutate: func(c *Config) { c.Model.RequestTimeout = "later" }, wantErr: "request_timeout"},
		{name: "policy", mutate: func(c *Config) { c.Tools.Policies = map[string]string{"readFile": "args.path +"} }, wantErr: "tools.policies"},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "verbose" }, wantErr: "log.level"},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.ErrorIs(t, err, toolchat.ErrInvalidConfig)

			var cfgErr *toolchat.Error
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, toolchat.KindConfiguration, cfgErr.Kind)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	c := Default()
	c.Agent.MaxRoundTrips = -1
	c.Log.Format = "xml"

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "api_key")
	assert.ErrorContains(t, err, "max_round_trips")
	assert.ErrorContains(t, err, "log.format")
}

func TestDurationGetters(t *testing.T) {
	var nilTools *ToolsConfig
	assert.Equal(t, 30*time.Second, nilTools.GetTimeout())
	assert.Equal(t, 30*time.Second, (&ToolsConfig{Timeout: "bogus"}).GetTimeout())

	var nilModel *ModelConfig
	assert.Zero(t, nilModel.GetRequestTimeout())
	assert.Equal(t, 2*time.Minute, (&ModelConfig{RequestTimeout: "2m"}).GetRequestTimeout())
}
