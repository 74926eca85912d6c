package tool

import (
	"errors"
	"time"

	"github.com/zero-day-ai/toolchat/schema"
)

// Config holds the configuration for building an Entry.
type Config struct {
	name        string
	description string
	parameters  schema.JSON
	timeout     time.Duration
	executor    Executor
}

// NewConfig creates a new Config whose parameters default to an empty object.
func NewConfig() *Config {
	return &Config{
		parameters: schema.Object(map[string]schema.JSON{}),
	}
}

// SetName sets the tool name.
func (c *Config) SetName(name string) *Config {
	c.name = name
	return c
}

// SetDescription sets the tool description.
func (c *Config) SetDescription(desc string) *Config {
	c.description = desc
	return c
}

// SetParameters sets the argument schema.
func (c *Config) SetParameters(s schema.JSON) *Config {
	c.parameters = s
	return c
}

// SetTimeout bounds each execution of the tool.
func (c *Config) SetTimeout(d time.Duration) *Config {
	c.timeout = d
	return c
}

// SetExecutor sets the executor.
func (c *Config) SetExecutor(e Executor) *Config {
	c.executor = e
	return c
}

// SetExecuteFunc sets the executor from a plain function.
func (c *Config) SetExecuteFunc(fn ExecutorFunc) *Config {
	c.executor = fn
	return c
}

// New creates an Entry from the provided Config.
// Returns an error if required fields (name, description, executor) are missing.
func New(cfg *Config) (Entry, error) {
	if cfg == nil {
		return Entry{}, errors.New("config cannot be nil")
	}
	if cfg.name == "" {
		return Entry{}, errors.New("tool name is required")
	}
	if cfg.description == "" {
		return Entry{}, errors.New("tool description is required")
	}
	if cfg.executor == nil {
		return Entry{}, errors.New("executor is required")
	}
	if cfg.timeout < 0 {
		return Entry{}, errors.New("timeout cannot be negative")
	}

	return Entry{
		Spec: Spec{
			Name:        cfg.name,
			Description: cfg.description,
			Parameters:  cfg.parameters,
		},
		Executor: cfg.executor,
		Timeout:  cfg.timeout,
	}, nil
}

// MustNew is like New but panics on error. Intended for static tool tables.
func MustNew(cfg *Config) Entry {
	e, err := New(cfg)
	if err != nil {
		panic("tool: " + err.Error())
	}
	return e
}
