package toolset

import (
	"context"
	"net/url"
	"strings"

	"github.com/zero-day-ai/toolchat/schema"
	"github.com/zero-day-ai/toolchat/tool"
	"github.com/zero-day-ai/toolchat/toolerr"
)

type weatherArgs struct {
	Location string `json:"location" description:"The city and country, e.g. 'London, UK'"`
}

func weatherTool(opts Options) (tool.Entry, error) {
	return tool.New(tool.NewConfig().
		SetName(NameGetWeather).
		SetDescription("Get the current weather for a given location").
		SetParameters(schema.FromType(weatherArgs{})).
		SetTimeout(opts.Timeout).
		SetExecuteFunc(func(ctx context.Context, args map[string]any) (string, error) {
			var in weatherArgs
			if err := decodeArgs(NameGetWeather, args, &in); err != nil {
				return "", err
			}
			return getWeather(ctx, opts, in)
		}))
}

func getWeather(ctx context.Context, opts Options, in weatherArgs) (string, error) {
	location := strings.TrimSpace(in.Location)
	if location == "" {
		return "", toolerr.New(NameGetWeather, "validate", toolerr.ErrCodeInvalidInput, "location cannot be empty").
			WithCause(toolerr.ErrInvalidInput)
	}

	u := strings.TrimRight(opts.WeatherURL, "/") + "/" + url.PathEscape(location) + "?format=3"
	body, err := fetch(ctx, opts.HTTPClient, NameGetWeather, u, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
