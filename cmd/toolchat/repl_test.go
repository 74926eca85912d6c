package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/toolchat"
	"github.com/zero-day-ai/toolchat/llm"
)

type fakeChat struct {
	inputs []string
	fail   map[string]error
	usage  llm.TokenUsage
}

func (f *fakeChat) Turn(_ context.Context, input string) (string, error) {
	f.inputs = append(f.inputs, input)
	if err := f.fail[input]; err != nil {
		return "", err
	}
	return "ok", nil
}

func (f *fakeChat) Usage() llm.TokenUsage { return f.usage }

func TestREPL(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantInputs []string
		wantOut    []string
	}{
		{
			name:       "turns until quit",
			input:      "hello\n\nweather?\n/quit\nignored\n",
			wantInputs: []string{"hello", "weather?"},
			wantOut:    []string{"You: You: You: You: "},
		},
		{
			name:       "eof without newline",
			input:      "last words",
			wantInputs: []string{"last words"},
		},
		{
			name:    "usage",
			input:   "/usage\n",
			wantOut: []string{"tokens: input=10 output=5 total=15"},
		},
		{
			name:       "fatal error keeps reading",
			input:      "loop forever\nstill here\n",
			wantInputs: []string{"loop forever", "still here"},
			wantOut:    []string{"error: ", "too many function call loops, possible runaway"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &fakeChat{
				usage: llm.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
				fail: map[string]error{
					"loop forever": toolchat.NewRunawayError("Loop.Turn", toolchat.ErrRunawayLoop),
				},
			}
			var out bytes.Buffer

			err := newREPL(strings.NewReader(tt.input), &out, chat).run(context.Background())
			require.NoError(t, err)

			assert.Equal(t, tt.wantInputs, chat.inputs)
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestREPLStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chat := &fakeChat{}
	var out bytes.Buffer
	require.NoError(t, newREPL(strings.NewReader("hello\n"), &out, chat).run(ctx))
	assert.Empty(t, chat.inputs)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("tty closed") }

func TestREPLReadError(t *testing.T) {
	err := newREPL(errReader{}, &bytes.Buffer{}, &fakeChat{}).run(context.Background())
	assert.ErrorContains(t, err, "tty closed")
}
