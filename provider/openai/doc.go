// Package openai streams chat completions from OpenAI-compatible services
// and adapts them to llm.Stream.
//
// Parallel tool calls are disabled on every request; if a service sends
// several calls anyway, only the first is surfaced.
package openai
