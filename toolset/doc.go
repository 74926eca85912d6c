// Package toolset provides the built-in tools: current weather, web search,
// currency conversion, and reading, writing and deleting files inside a
// workspace directory.
//
// Every tool reports failures as *toolerr.Error values so the dispatcher can
// render them for the model:
//
//	entries, err := toolset.Entries(toolset.Options{Workspace: "./work"})
//	if err != nil {
//		return err
//	}
//	registry, err := tool.NewRegistry(entries...)
package toolset
