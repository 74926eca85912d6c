// Package toolchat is a streaming, tool-calling chat agent for OpenAI-compatible
// chat completion services.
//
// A turn starts with one line of user input. The agent loop sends the whole
// conversation and the advertised tool definitions to the model, echoes the
// streamed text as it arrives, and when the model asks for a function call it
// runs the matching tool, appends the call and its string result to the
// conversation, and asks the model again. The turn ends with a final text
// answer, or fails when the model misbehaves.
//
// # Packages
//
//   - llm: messages, tool definitions, delta events and the stream accumulator
//   - schema: parameter schemas advertised to the model and used to validate arguments
//   - tool: the static tool registry, the dispatcher firewall and CEL argument policies
//   - toolerr: structured tool failures rendered as strings for the model
//   - agent: the conversation and the bounded orchestration loop
//   - eventing: in-memory and Redis sinks for turn events
//   - provider/openai: the streaming model transport
//   - toolset: weather, web search, currency and file tools
//   - config: YAML configuration with environment overrides
//
// # Errors
//
// This package holds the error kinds shared by the other packages. Only fatal
// conditions leave a turn as errors:
//
//	reply, err := loop.Turn(ctx, "What's the weather in London?")
//	switch {
//	case errors.Is(err, toolchat.ErrRunawayLoop):
//		// the model never stopped calling tools
//	case errors.Is(err, toolchat.ErrProtocolViolation):
//		// the model sent arguments that are not JSON
//	case errors.Is(err, toolchat.ErrTransport):
//		// the model service failed
//	}
//
// Tool failures never surface here: the dispatcher turns them into string
// results the model can read and react to.
package toolchat
