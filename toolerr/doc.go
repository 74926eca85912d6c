// Package toolerr provides structured failures for tool calls.
//
// Tool failures never abort a conversation turn. The dispatcher converts
// every failure into an Error, enriches it with a class and recovery hints,
// and hands Render's output back to the model as the tool result:
//
//	err := toolerr.New("readFile", "execute", toolerr.ErrCodeNotFound, "notes.txt does not exist")
//	result := toolerr.EnrichError(err).Render()
//	// Error (permanent): readFile [execute/NOT_FOUND]: notes.txt does not exist
//
// Tools may return an *Error themselves to choose the code; any other error
// is wrapped by Wrap, which maps deadline errors to ErrCodeTimeout. Errors a
// tool returns are copied before enrichment and never modified:
//
//	var toolErr *toolerr.Error
//	if errors.As(err, &toolErr) {
//	    fmt.Printf("Tool: %s, Code: %s\n", toolErr.Tool, toolErr.Code)
//	}
//
// Hints are looked up per tool and error code, falling back to hints
// registered under Wildcard.
package toolerr
