// Package agent runs the tool-calling conversation loop.
//
// A Loop owns one Conversation. Each call to Turn appends the user's input,
// streams a completion from the Model with the dispatcher's tool
// definitions attached, and either returns the model's text or runs the
// single tool call it requested and asks again:
//
//	loop, err := agent.New(model, dispatcher,
//		agent.WithSystemPrompt(prompt),
//		agent.WithEcho(os.Stdout, "AI: "),
//	)
//	if err != nil {
//		return err
//	}
//	reply, err := loop.Turn(ctx, "What's the weather in London?")
//
// A turn allows DefaultMaxRoundTrips tool dispatches. When the model asks
// for one more, the turn fails with toolchat.ErrRunawayLoop. Tool call
// arguments that are not a JSON object fail it with
// toolchat.ErrProtocolViolation, and model service failures with
// toolchat.ErrTransport. Everything appended before a failure stays in the
// conversation, so the next turn continues from there.
package agent
