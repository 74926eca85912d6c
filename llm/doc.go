// Package llm defines the conversation and streaming types shared by the
// agent loop, the tool layer and model providers.
//
// # Messages
//
// Message is a tagged union. Build messages with the constructors so each
// variant carries exactly its own fields:
//
//	history := []llm.Message{
//	    llm.SystemMessage("You are a helpful assistant."),
//	    llm.UserMessage("What's the weather in London?"),
//	    llm.ToolRequestMessage(llm.ToolCall{ID: "call_1", Name: "getWeather", Arguments: `{"location":"London"}`}),
//	    llm.ToolResultMessage("call_1", "getWeather", "London: +18C"),
//	}
//
// # Streaming
//
// Providers return a Stream of StreamChunk deltas. A StreamAccumulator folds
// them into a CompletionResponse that is either text or a single tool call,
// optionally echoing text to a writer as it arrives:
//
//	acc := llm.NewStreamAccumulator(llm.WithEcho(os.Stdout, llm.DefaultEchoLabel))
//	resp, err := llm.Accumulate(stream, acc)
//	if err != nil {
//	    return err
//	}
//	if resp.HasToolCall() {
//	    // dispatch resp.ToolCall
//	}
//
// # Token Tracking
//
//	tracker := llm.NewTokenTracker()
//	tracker.Add("gpt-4o", resp.Usage)
//	fmt.Printf("Total tokens used: %d\n", tracker.Total().TotalTokens)
package llm
