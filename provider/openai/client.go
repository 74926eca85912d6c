package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/zero-day-ai/toolchat/llm"
)

// DefaultModel is used when neither the options nor the request name a model.
const DefaultModel = "gpt-4o"

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("openai: api key is required")

// Options configures a Client.
type Options struct {
	// APIKey authenticates every request. Required.
	APIKey string

	// BaseURL points the client at an OpenAI-compatible service.
	// Empty means the public OpenAI endpoint.
	BaseURL string

	// Model is the default model for requests that do not set one.
	Model string

	// RequestTimeout bounds each request including the whole stream.
	// Zero means no timeout beyond the caller's context.
	RequestTimeout time.Duration

	// MaxRetries is the number of retries on connection errors and
	// retryable status codes before the stream opens.
	MaxRetries int

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client is a streaming chat completion client.
type Client struct {
	client oai.Client
	model  string
	logger *slog.Logger
}

// New creates a client.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.MaxRetries < 0 {
		return nil, fmt.Errorf("openai: max retries must not be negative, got %d", opts.MaxRetries)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	if opts.RequestTimeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.RequestTimeout))
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		client: oai.NewClient(reqOpts...),
		model:  model,
		logger: logger,
	}, nil
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.model
}

// Stream opens a streaming completion for req. Errors establishing the
// stream are returned here; errors while reading surface from the stream.
func (c *Client) Stream(ctx context.Context, req *llm.CompletionRequest) (llm.Stream, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("openai: invalid request: %w", err)
	}

	params, err := c.params(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("opening completion stream",
		"model", params.Model,
		"messages", len(params.Messages),
		"tools", len(params.Tools))

	s := c.client.Chat.Completions.NewStreaming(ctx, params)
	if err := s.Err(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("openai: open stream: %w", err)
	}
	return newStream(s, c.logger), nil
}

func (c *Client) params(req *llm.CompletionRequest) (oai.ChatCompletionNewParams, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}

	messages, err := convertMessages(req.Messages)
	if err != nil {
		return oai.ChatCompletionNewParams{}, err
	}

	params := oai.ChatCompletionNewParams{
		Model:    oai.ChatModel(model),
		Messages: messages,
		StreamOptions: oai.ChatCompletionStreamOptionsParam{
			IncludeUsage: oai.Bool(true),
		},
	}

	if req.Temperature != nil {
		params.Temperature = oai.Float(*req.Temperature)
	}
	if req.FrequencyPenalty != nil {
		params.FrequencyPenalty = oai.Float(*req.FrequencyPenalty)
	}
	if req.PresencePenalty != nil {
		params.PresencePenalty = oai.Float(*req.PresencePenalty)
	}

	if len(req.Tools) > 0 {
		params.Tools = convertTools(req.Tools)
		params.ParallelToolCalls = oai.Bool(false)
		if req.ToolChoice != "" {
			params.ToolChoice = oai.ChatCompletionToolChoiceOptionUnionParam{
				OfAuto: oai.String(string(req.ToolChoice)),
			}
		}
	}

	return params, nil
}
