package toolset

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/zero-day-ai/toolchat/tool"
)

// Tool names as advertised to the model.
const (
	NameGetWeather      = "getWeather"
	NameSearchWeb       = "searchWeb"
	NameConvertCurrency = "convertCurrency"
	NameReadFile        = "readFile"
	NameWriteFile       = "writeFile"
	NameDeleteFile      = "deleteFile"
)

// Default endpoints and limits.
const (
	DefaultWeatherURL  = "https://wttr.in"
	DefaultSearchURL   = "https://www.bing.com/search"
	DefaultExchangeURL = "https://api.exchangerate.host"

	DefaultTimeout     = 30 * time.Second
	DefaultSearchLimit = 8000
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/113.0.0.0 Safari/537.36"

	// maxResponseBytes caps how much of any remote response is read.
	maxResponseBytes = 2 << 20
)

// Options configures the built-in tools. Zero values select the defaults.
type Options struct {
	HTTPClient *http.Client

	WeatherURL  string
	SearchURL   string
	ExchangeURL string

	// ExchangeAccessKey is sent as access_key to the exchange rate service
	// when set.
	ExchangeAccessKey string

	// Workspace is the directory file tools are confined to.
	// Defaults to the current directory.
	Workspace string

	// Timeout bounds each remote call.
	Timeout time.Duration

	// SearchLimit is the maximum number of characters of converted search
	// results returned to the model.
	SearchLimit int

	UserAgent string
}

func (o Options) withDefaults() (Options, error) {
	if o.HTTPClient == nil {
		o.HTTPClient = http.DefaultClient
	}
	if o.WeatherURL == "" {
		o.WeatherURL = DefaultWeatherURL
	}
	if o.SearchURL == "" {
		o.SearchURL = DefaultSearchURL
	}
	if o.ExchangeURL == "" {
		o.ExchangeURL = DefaultExchangeURL
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.SearchLimit <= 0 {
		o.SearchLimit = DefaultSearchLimit
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Workspace == "" {
		o.Workspace = "."
	}
	root, err := filepath.Abs(o.Workspace)
	if err != nil {
		return o, fmt.Errorf("resolve workspace %q: %w", o.Workspace, err)
	}
	o.Workspace = root
	return o, nil
}

// Entries builds all six tools.
func Entries(opts Options) ([]tool.Entry, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	builders := []func(Options) (tool.Entry, error){
		weatherTool,
		searchTool,
		currencyTool,
		readFileTool,
		writeFileTool,
		deleteFileTool,
	}

	entries := make([]tool.Entry, 0, len(builders))
	for _, build := range builders {
		e, err := build(opts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
