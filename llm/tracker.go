package llm

import (
	"sort"
	"sync"
)

// TokenTracker accumulates token usage per model.
type TokenTracker interface {
	// Add records token usage for a model.
	Add(model string, usage TokenUsage)

	// Total returns the aggregate token usage across all models.
	Total() TokenUsage

	// ByModel returns the token usage for a single model.
	ByModel(model string) TokenUsage

	// Models returns the tracked model names, sorted.
	Models() []string

	// Reset clears all tracked token usage.
	Reset()
}

// DefaultTokenTracker is a thread-safe implementation of TokenTracker.
type DefaultTokenTracker struct {
	mu     sync.RWMutex
	models map[string]TokenUsage
	total  TokenUsage
}

// NewTokenTracker creates a new DefaultTokenTracker.
func NewTokenTracker() *DefaultTokenTracker {
	return &DefaultTokenTracker{
		models: make(map[string]TokenUsage),
	}
}

func (t *DefaultTokenTracker) Add(model string, usage TokenUsage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.models[model] = t.models[model].Add(usage)
	t.total = t.total.Add(usage)
}

func (t *DefaultTokenTracker) Total() TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// ByModel returns an empty TokenUsage for models that were never used.
func (t *DefaultTokenTracker) ByModel(model string) TokenUsage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.models[model]
}

func (t *DefaultTokenTracker) Models() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	models := make([]string, 0, len(t.models))
	for m := range t.models {
		models = append(models, m)
	}
	sort.Strings(models)
	return models
}

func (t *DefaultTokenTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.models = make(map[string]TokenUsage)
	t.total = TokenUsage{}
}

// Snapshot is a point-in-time copy of tracked usage.
type Snapshot struct {
	Models map[string]TokenUsage
	Total  TokenUsage
}

// Snapshot returns a copy of the current token usage state.
func (t *DefaultTokenTracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	models := make(map[string]TokenUsage, len(t.models))
	for m, usage := range t.models {
		models[m] = usage
	}
	return Snapshot{Models: models, Total: t.total}
}
