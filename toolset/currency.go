package toolset

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/zero-day-ai/toolchat/schema"
	"github.com/zero-day-ai/toolchat/tool"
	"github.com/zero-day-ai/toolchat/toolerr"
)

type currencyArgs struct {
	Amount float64 `json:"amount" description:"The amount of money to convert"`
	From   string  `json:"from" description:"The currency code to convert from (e.g. 'USD')"`
	To     string  `json:"to" description:"The currency code to convert to (e.g. 'EUR')"`
}

type convertResponse struct {
	Success bool    `json:"success"`
	Result  float64 `json:"result"`
	Error   *struct {
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

func currencyTool(opts Options) (tool.Entry, error) {
	return tool.New(tool.NewConfig().
		SetName(NameConvertCurrency).
		SetDescription("Convert an amount from one currency to another").
		SetParameters(schema.FromType(currencyArgs{})).
		SetTimeout(opts.Timeout).
		SetExecuteFunc(func(ctx context.Context, args map[string]any) (string, error) {
			var in currencyArgs
			if err := decodeArgs(NameConvertCurrency, args, &in); err != nil {
				return "", err
			}
			return convertCurrency(ctx, opts, in)
		}))
}

func convertCurrency(ctx context.Context, opts Options, in currencyArgs) (string, error) {
	from := strings.ToUpper(strings.TrimSpace(in.From))
	to := strings.ToUpper(strings.TrimSpace(in.To))
	if from == "" || to == "" {
		return "", toolerr.New(NameConvertCurrency, "validate", toolerr.ErrCodeInvalidInput, "from and to currency codes are required").
			WithCause(toolerr.ErrInvalidInput)
	}

	amount := strconv.FormatFloat(in.Amount, 'f', -1, 64)
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", amount)
	if opts.ExchangeAccessKey != "" {
		q.Set("access_key", opts.ExchangeAccessKey)
	}
	u := strings.TrimRight(opts.ExchangeURL, "/") + "/convert?" + q.Encode()

	body, err := fetch(ctx, opts.HTTPClient, NameConvertCurrency, u, nil)
	if err != nil {
		return "", err
	}

	var out convertResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", toolerr.New(NameConvertCurrency, "decode", toolerr.ErrCodeParseError, "unexpected response from exchange rate service").
			WithCause(err)
	}
	if !out.Success {
		msg := "currency conversion failed"
		if out.Error != nil && out.Error.Info != "" {
			msg += ": " + out.Error.Info
		}
		return "", toolerr.New(NameConvertCurrency, "convert", toolerr.ErrCodeExecutionFailed, msg).
			WithDetails(map[string]any{"from": from, "to": to})
	}

	return fmt.Sprintf("%s %s = %s %s", amount, from, strconv.FormatFloat(out.Result, 'f', -1, 64), to), nil
}
