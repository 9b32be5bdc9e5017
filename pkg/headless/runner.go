package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/radworks/radchat/pkg/config"
	"github.com/radworks/radchat/pkg/decoder"
	"github.com/radworks/radchat/pkg/sse"
	"github.com/radworks/radchat/pkg/toolresult"
	"github.com/radworks/radchat/pkg/tui/theme"
)

// Runner streams a single prompt's answer to a writer: text as it arrives,
// tool results as styled cards. Made for scripting and quick checks, no
// terminal takeover.
type Runner struct {
	client *sse.Client
	styles *theme.Styles
	model  string
	out    io.Writer
}

func New(cfg *config.Config, model string, out io.Writer) *Runner {
	backendURL := cfg.Backend.URL
	if backendURL == "" {
		backendURL = "http://127.0.0.1:8000"
	}
	return &Runner{
		client: sse.NewClient(backendURL),
		styles: theme.DefaultStyles(),
		model:  model,
		out:    out,
	}
}

// Run sends one prompt and writes the decoded response until the stream
// ends. A backend error mid-stream becomes the returned error after the
// partial output.
func (r *Runner) Run(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("prompt is empty")
	}

	fragments, err := r.client.StreamChat(ctx, sse.Request{
		Message:   prompt,
		SessionID: uuid.NewString(),
		Model:     r.model,
	})
	if err != nil {
		return err
	}

	var state decoder.State
	var streamErr error

	for frag := range fragments {
		if frag.Err != nil {
			streamErr = frag.Err
			break
		}
		var events []decoder.Event
		state, events = decoder.Scan(state, frag.Text)
		for _, ev := range events {
			r.apply(ev)
		}
	}
	for _, ev := range decoder.Finish(state) {
		r.apply(ev)
	}
	fmt.Fprintln(r.out)

	if streamErr != nil {
		var backendErr *sse.BackendError
		if errors.As(streamErr, &backendErr) {
			fmt.Fprintln(r.out, r.styles.ErrorMessage.Render("✗ "+backendErr.Message))
		}
		return streamErr
	}
	return nil
}

func (r *Runner) apply(ev decoder.Event) {
	switch ev := ev.(type) {
	case decoder.Text:
		fmt.Fprint(r.out, r.styles.AssistantMessage.Render(ev.Content))

	case decoder.ToolStarted:
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.styles.Thinking.Render("⋯ running "+ev.ToolName))

	case decoder.ToolCompleted:
		if card, ok := toolresult.Interpret(ev); ok {
			fmt.Fprint(r.out, renderCard(r.styles, card))
		}
	}
}
