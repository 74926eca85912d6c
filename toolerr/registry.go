package toolerr

import (
	"sort"
	"sync"
)

// Wildcard registers hints that apply to every tool without specific ones.
const Wildcard = "*"

// RecoveryRegistry stores known failure modes and recovery hints per tool:
//
//	tool -> errorCode -> []RecoveryHint
type RecoveryRegistry struct {
	mu       sync.RWMutex
	registry map[string]map[string][]RecoveryHint
}

// NewRecoveryRegistry creates an empty registry.
func NewRecoveryRegistry() *RecoveryRegistry {
	return &RecoveryRegistry{registry: make(map[string]map[string][]RecoveryHint)}
}

// globalRegistry backs the package-level Register, GetHints and EnrichError.
var globalRegistry = NewRecoveryRegistry()

// Register replaces the hints for a tool's error code. Hints are kept sorted
// by priority.
func (r *RecoveryRegistry) Register(tool, errorCode string, hints ...RecoveryHint) {
	sorted := append([]RecoveryHint(nil), hints...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registry[tool] == nil {
		r.registry[tool] = make(map[string][]RecoveryHint)
	}
	r.registry[tool][errorCode] = sorted
}

// GetHints returns the hints for a tool's error code, falling back to the
// Wildcard entry. Returns nil if neither is registered.
func (r *RecoveryRegistry) GetHints(tool, errorCode string) []RecoveryHint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if hints, ok := r.registry[tool][errorCode]; ok {
		return append([]RecoveryHint(nil), hints...)
	}
	if hints, ok := r.registry[Wildcard][errorCode]; ok {
		return append([]RecoveryHint(nil), hints...)
	}
	return nil
}

// EnrichError sets a default class from the error code when none is set and
// appends the registered hints. A nil error is returned unchanged.
func (r *RecoveryRegistry) EnrichError(err *Error) *Error {
	if err == nil {
		return nil
	}

	if err.Class == "" {
		err.Class = DefaultClassForCode(err.Code)
	}

	if hints := r.GetHints(err.Tool, err.Code); len(hints) > 0 {
		err.Hints = append(err.Hints, hints...)
	}

	return err
}

// Register adds hints to the package-level registry.
func Register(tool, errorCode string, hints ...RecoveryHint) {
	globalRegistry.Register(tool, errorCode, hints...)
}

// GetHints looks up hints in the package-level registry.
func GetHints(tool, errorCode string) []RecoveryHint {
	return globalRegistry.GetHints(tool, errorCode)
}

// EnrichError enriches err from the package-level registry.
func EnrichError(err *Error) *Error {
	return globalRegistry.EnrichError(err)
}
