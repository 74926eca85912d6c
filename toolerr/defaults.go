package toolerr

// Fallback hints for every tool. Tool packages register their own
// specific hints on top of these.
func init() {
	Register(Wildcard, ErrCodeUnknownTool,
		RecoveryHint{
			Strategy: StrategyUseAlternative,
			Reason:   "only the advertised functions can be called",
			Priority: 1,
		},
	)

	Register(Wildcard, ErrCodeInvalidInput,
		RecoveryHint{
			Strategy: StrategyModifyParams,
			Reason:   "the arguments must match the function's parameter schema",
			Priority: 1,
		},
	)

	Register(Wildcard, ErrCodePolicyDenied,
		RecoveryHint{
			Strategy: StrategySkip,
			Reason:   "this call is not allowed; answer without it or ask the user",
			Priority: 1,
		},
	)

	Register(Wildcard, ErrCodeTimeout,
		RecoveryHint{
			Strategy: StrategyRetry,
			Reason:   "timeouts may be transient; a single retry often succeeds",
			Priority: 1,
		},
	)

	Register(Wildcard, ErrCodeNetworkError,
		RecoveryHint{
			Strategy: StrategyRetry,
			Reason:   "network errors are often transient",
			Priority: 1,
		},
	)
}
