package toolerr

// ErrorClass categorizes errors by their nature so the model, and the
// operator reading the logs, can tell a bad call from a bad day.
type ErrorClass string

const (
	// ErrorClassInfrastructure indicates environment or setup issues
	// Examples: workspace not writable, missing API endpoint
	ErrorClassInfrastructure ErrorClass = "infrastructure"

	// ErrorClassSemantic indicates the call itself was wrong
	// Examples: unknown tool, bad parameters, denied by policy
	ErrorClassSemantic ErrorClass = "semantic"

	// ErrorClassTransient indicates temporary failures that may resolve
	// Examples: network timeouts, rate limits, temporary unavailability
	ErrorClassTransient ErrorClass = "transient"

	// ErrorClassPermanent indicates non-recoverable failures
	// Examples: file does not exist, tool crashed
	ErrorClassPermanent ErrorClass = "permanent"
)

// RecoveryStrategy defines the type of recovery action that can be attempted.
type RecoveryStrategy string

const (
	// StrategyRetry indicates the call should be retried as-is
	StrategyRetry RecoveryStrategy = "retry"

	// StrategyModifyParams indicates changing arguments may help
	StrategyModifyParams RecoveryStrategy = "modify_params"

	// StrategyUseAlternative indicates using a different tool may work
	StrategyUseAlternative RecoveryStrategy = "use_alternative_tool"

	// StrategySkip indicates the model should answer without the tool
	StrategySkip RecoveryStrategy = "skip"
)

// RecoveryHint provides a concrete suggestion for recovering from an error.
type RecoveryHint struct {
	// Strategy indicates the type of recovery action
	Strategy RecoveryStrategy `json:"strategy"`

	// Alternative names the tool to use with StrategyUseAlternative
	Alternative string `json:"alternative,omitempty"`

	// Reason explains why this recovery approach might succeed
	Reason string `json:"reason"`

	// Priority determines the order to try hints (lower = try first)
	Priority int `json:"priority"`
}

// DefaultClassForCode returns the default error class for a given error code.
func DefaultClassForCode(code string) ErrorClass {
	switch code {
	case ErrCodePermissionDenied:
		return ErrorClassInfrastructure
	case ErrCodeUnknownTool, ErrCodeInvalidInput, ErrCodePolicyDenied, ErrCodeParseError:
		return ErrorClassSemantic
	case ErrCodeNotFound, ErrCodePanic:
		return ErrorClassPermanent
	case ErrCodeTimeout, ErrCodeNetworkError, ErrCodeExecutionFailed:
		return ErrorClassTransient
	default:
		return ErrorClassTransient
	}
}
