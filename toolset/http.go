package toolset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/zero-day-ai/toolchat/toolerr"
)

// fetch performs a GET and returns the body of a 2xx response.
func fetch(ctx context.Context, client *http.Client, name, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, toolerr.New(name, "request", toolerr.ErrCodeInvalidInput, "cannot build request").
			WithCause(err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, toolerr.New(name, "fetch", toolerr.ErrCodeTimeout, "request timed out").WithCause(err)
		}
		return nil, toolerr.New(name, "fetch", toolerr.ErrCodeNetworkError, "request failed").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, toolerr.New(name, "read", toolerr.ErrCodeNetworkError, "reading response failed").WithCause(err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, toolerr.New(name, "fetch", toolerr.ErrCodeNotFound, "remote resource not found").
			WithDetails(map[string]any{"status": resp.StatusCode})
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, toolerr.New(name, "fetch", toolerr.ErrCodeExecutionFailed,
			fmt.Sprintf("unexpected status %d", resp.StatusCode)).
			WithDetails(map[string]any{"status": resp.StatusCode})
	}
	return body, nil
}
