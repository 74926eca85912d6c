// Package tool holds the static tool registry and the dispatcher that runs
// tool calls on behalf of the model.
//
// Tools are built with a fluent Config and registered once:
//
//	weather := tool.MustNew(tool.NewConfig().
//		SetName("getWeather").
//		SetDescription("Get the current weather in a given location").
//		SetParameters(schema.Object(map[string]schema.JSON{
//			"location": schema.StringWithDesc("The city and state, e.g. San Francisco, CA"),
//		}, "location")).
//		SetTimeout(10 * time.Second).
//		SetExecuteFunc(fetchWeather))
//
//	registry, err := tool.NewRegistry(weather)
//
// The Dispatcher resolves a call by name, validates its arguments against the
// schema, checks the optional CEL Policy and runs the executor. Every failure
// past argument parsing is rendered as a string result (see package toolerr);
// only argument text that is not a JSON object is reported as an error:
//
//	d := tool.NewDispatcher(registry, tool.WithDefaultTimeout(30*time.Second))
//	result, err := d.Dispatch(ctx, call)
//	if err != nil {
//		// protocol violation, the turn must end
//	}
package tool
