package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zero-day-ai/toolchat/llm"
)

const prompt = "You: "

type chatter interface {
	Turn(ctx context.Context, input string) (string, error)
	Usage() llm.TokenUsage
}

// repl reads one line per turn. The loop echoes replies itself.
type repl struct {
	in   *bufio.Reader
	out  io.Writer
	chat chatter
}

func newREPL(in io.Reader, out io.Writer, chat chatter) *repl {
	return &repl{in: bufio.NewReader(in), out: out, chat: chat}
}

func (r *repl) run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := io.WriteString(r.out, prompt); err != nil {
			return err
		}
		line, readErr := r.in.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return readErr
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
		case "/quit", "/exit":
			return nil
		case "/usage":
			u := r.chat.Usage()
			fmt.Fprintf(r.out, "tokens: input=%d output=%d total=%d\n", u.InputTokens, u.OutputTokens, u.TotalTokens)
		default:
			if _, err := r.chat.Turn(ctx, input); err != nil {
				// the conversation survives a failed turn
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
		}

		if errors.Is(readErr, io.EOF) {
			fmt.Fprintln(r.out)
			return nil
		}
	}
}
