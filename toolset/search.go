package toolset

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/zero-day-ai/toolchat/schema"
	"github.com/zero-day-ai/toolchat/tool"
	"github.com/zero-day-ai/toolchat/toolerr"
)

const truncatedMarker = "\n\n[results truncated]"

type searchArgs struct {
	Query string `json:"query" description:"The search query to run on Bing"`
	URL   string `json:"url,omitempty" description:"A search page on the Bing host to use instead of the default, e.g. 'https://www.bing.com/news/search'"`
}

func searchTool(opts Options) (tool.Entry, error) {
	return tool.New(tool.NewConfig().
		SetName(NameSearchWeb).
		SetDescription("Perform a web search for a given query").
		SetParameters(schema.FromType(searchArgs{})).
		SetTimeout(opts.Timeout).
		SetExecuteFunc(func(ctx context.Context, args map[string]any) (string, error) {
			var in searchArgs
			if err := decodeArgs(NameSearchWeb, args, &in); err != nil {
				return "", err
			}
			return searchWeb(ctx, opts, in)
		}))
}

func searchWeb(ctx context.Context, opts Options, in searchArgs) (string, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return "", toolerr.New(NameSearchWeb, "validate", toolerr.ErrCodeInvalidInput, "query cannot be empty").
			WithCause(toolerr.ErrInvalidInput)
	}

	u, err := searchURL(opts.SearchURL, in.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	header := http.Header{}
	header.Set("User-Agent", opts.UserAgent)
	header.Set("Accept-Language", "en-GB,en;q=0.9")

	body, err := fetch(ctx, opts.HTTPClient, NameSearchWeb, u.String(), header)
	if err != nil {
		return "", err
	}

	md, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return "", toolerr.New(NameSearchWeb, "convert", toolerr.ErrCodeParseError, "search results are not readable HTML").
			WithCause(err)
	}
	return truncate(strings.TrimSpace(md), opts.SearchLimit), nil
}

// searchURL resolves the page to fetch. The model may pick another path but
// never another host than the configured search endpoint.
func searchURL(base, override string) (*url.URL, error) {
	configured, err := url.Parse(base)
	if err != nil {
		return nil, toolerr.New(NameSearchWeb, "validate", toolerr.ErrCodeExecutionFailed, "search endpoint is not a valid URL").
			WithCause(err)
	}
	if override == "" {
		return configured, nil
	}

	u, err := url.Parse(override)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, toolerr.New(NameSearchWeb, "validate", toolerr.ErrCodeInvalidInput, "url must be an absolute http(s) URL").
			WithCause(toolerr.ErrInvalidInput).
			WithDetails(map[string]any{"url": override})
	}
	if !strings.EqualFold(u.Host, configured.Host) {
		return nil, toolerr.New(NameSearchWeb, "validate", toolerr.ErrCodePermissionDenied,
			"url must be on "+configured.Host).
			WithDetails(map[string]any{"url": override})
	}
	return u, nil
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + truncatedMarker
}
