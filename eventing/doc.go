// Package eventing delivers turn events from the agent loop to observers.
//
// The loop publishes one Event per state change (turn started, assistant
// message, tool request, tool result, turn completed or failed). Sinks never
// influence the loop: publish errors are logged and the turn carries on.
//
//	mem := eventing.NewMemorySink()
//	rs, err := eventing.NewRedisSink(eventing.RedisOptions{URL: "redis://localhost:6379"})
//	if err != nil {
//		return err
//	}
//	defer rs.Close()
//	loop := agent.New(model, dispatcher, agent.WithSink(eventing.Multi(mem, rs)))
//
// LogSink records each event as a structured log line. RedisSink.Subscribe
// lets another process follow a session live; `toolchat -follow` does that.
package eventing
