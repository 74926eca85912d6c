package toolset

import "github.com/zero-day-ai/toolchat/toolerr"

func init() {
	toolerr.Register(NameGetWeather, toolerr.ErrCodeNotFound,
		toolerr.RecoveryHint{
			Strategy: toolerr.StrategyModifyParams,
			Reason:   "the location was not recognised; try 'City, Country'",
			Priority: 1,
		},
	)

	toolerr.Register(NameSearchWeb, toolerr.ErrCodeNetworkError,
		toolerr.RecoveryHint{
			Strategy: toolerr.StrategyRetry,
			Reason:   "the search engine may be briefly unreachable",
			Priority: 1,
		},
		toolerr.RecoveryHint{
			Strategy: toolerr.StrategySkip,
			Reason:   "answer from what you already know and say the search failed",
			Priority: 2,
		},
	)

	toolerr.Register(NameConvertCurrency, toolerr.ErrCodeExecutionFailed,
		toolerr.RecoveryHint{
			Strategy: toolerr.StrategyModifyParams,
			Reason:   "use ISO 4217 currency codes such as GBP, USD or EUR",
			Priority: 1,
		},
	)

	for _, name := range []string{NameReadFile, NameDeleteFile} {
		toolerr.Register(name, toolerr.ErrCodeNotFound,
			toolerr.RecoveryHint{
				Strategy: toolerr.StrategyModifyParams,
				Reason:   "check the path; it is relative to the workspace",
				Priority: 1,
			},
		)
	}

	for _, name := range []string{NameReadFile, NameWriteFile, NameDeleteFile} {
		toolerr.Register(name, toolerr.ErrCodePermissionDenied,
			toolerr.RecoveryHint{
				Strategy: toolerr.StrategySkip,
				Reason:   "only files inside the workspace can be accessed",
				Priority: 1,
			},
		)
	}
}
