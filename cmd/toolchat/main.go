// Command toolchat is an interactive chat with a tool-calling model.
//
// It reads one line per turn, streams the answer to stdout and logs to
// stderr. Configuration comes from toolchat.yaml (found in the current
// directory or a parent, or given with -config) and environment overrides.
//
// With -follow it chats with nobody and instead prints the events other
// sessions publish on the configured Redis channel.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/agent"
	"github.com/zero-day-ai/toolchat/config"
	"github.com/zero-day-ai/toolchat/eventing"
	"github.com/zero-day-ai/toolchat/provider/openai"
	"github.com/zero-day-ai/toolchat/tool"
	"github.com/zero-day-ai/toolchat/toolset"
)

func main() {
	configPath := flag.String("config", "", "path to toolchat.yaml or a directory containing it")
	followMode := flag.Bool("follow", false, "print events published by other sessions instead of chatting")
	flag.Parse()

	if err := run(*configPath, *followMode); err != nil {
		fmt.Fprintf(os.Stderr, "toolchat: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, followMode bool) error {
	load := loadConfig
	if followMode {
		load = readConfig
	}
	cfg, err := load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if followMode {
		return follow(ctx, cfg.Events, logger, os.Stdout)
	}

	loop, cleanup, err := build(cfg, logger, os.Stdout)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("toolchat ready",
		"model", cfg.Model.Name,
		"workspace", cfg.Tools.Workspace,
		"max_round_trips", cfg.Agent.MaxRoundTrips)

	return newREPL(os.Stdin, os.Stdout, loop).run(ctx)
}

// loadConfig reads and validates the configuration a chat session needs.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readConfig loads the file, or defaults when none is found, and applies
// environment overrides.
func readConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromDir(".")
		if errors.Is(err, config.ErrNotFound) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	return cfg, nil
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: "15:04:05.000",
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindAny {
				if _, ok := a.Value.Any().(error); ok {
					return tint.Attr(9, a)
				}
			}
			return a
		},
	}))
}

// build wires the loop from configuration. Events always reach the debug log
// and, when configured, Redis. cleanup releases the Redis connection.
func build(cfg *config.Config, logger *slog.Logger, echo io.Writer) (*agent.Loop, func(), error) {
	cleanup := func() {}

	entries, err := toolset.Entries(toolset.Options{
		Workspace:         cfg.Tools.Workspace,
		Timeout:           cfg.Tools.GetTimeout(),
		SearchLimit:       cfg.Tools.SearchLimit,
		ExchangeAccessKey: cfg.Tools.ExchangeAccessKey,
	})
	if err != nil {
		return nil, cleanup, fmt.Errorf("build tools: %w", err)
	}
	registry, err := tool.NewRegistry(entries...)
	if err != nil {
		return nil, cleanup, fmt.Errorf("build tools: %w", err)
	}

	dispatcherOpts := []tool.DispatcherOption{
		tool.WithLogger(logger),
		tool.WithDefaultTimeout(cfg.Tools.GetTimeout()),
	}
	if len(cfg.Tools.Policies) > 0 {
		policy, err := tool.NewPolicy(cfg.Tools.Policies)
		if err != nil {
			return nil, cleanup, fmt.Errorf("build policy: %w", err)
		}
		dispatcherOpts = append(dispatcherOpts, tool.WithPolicy(policy))
	}
	dispatcher := tool.NewDispatcher(registry, dispatcherOpts...)

	model, err := openai.New(openai.Options{
		APIKey:         cfg.Model.APIKey,
		BaseURL:        cfg.Model.BaseURL,
		Model:          cfg.Model.Name,
		RequestTimeout: cfg.Model.GetRequestTimeout(),
		Logger:         logger,
	})
	if err != nil {
		return nil, cleanup, fmt.Errorf("build model client: %w", err)
	}

	sinks := []eventing.Sink{eventing.NewLogSink(logger, slog.LevelDebug)}
	if cfg.Events.RedisURL != "" {
		redisSink, err := eventing.NewRedisSink(eventing.RedisOptions{
			URL:     cfg.Events.RedisURL,
			Channel: cfg.Events.Channel,
			Logger:  logger,
		})
		if err != nil {
			return nil, cleanup, fmt.Errorf("build event sink: %w", err)
		}
		sinks = append(sinks, redisSink)
		cleanup = func() { toolchat.CloseWithLog(redisSink, logger, "redis sink") }
	}

	loop, err := agent.New(model, dispatcher,
		agent.WithSystemPrompt(cfg.Agent.SystemPrompt),
		agent.WithModel(cfg.Model.Name),
		agent.WithTemperature(cfg.Model.Temperature),
		agent.WithFrequencyPenalty(cfg.Model.FrequencyPenalty),
		agent.WithPresencePenalty(cfg.Model.PresencePenalty),
		agent.WithMaxRoundTrips(cfg.Agent.MaxRoundTrips),
		agent.WithEcho(echo, cfg.Agent.EchoLabel),
		agent.WithSink(eventing.Multi(sinks...)),
		agent.WithLogger(logger),
	)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("build agent: %w", err)
	}
	return loop, cleanup, nil
}
