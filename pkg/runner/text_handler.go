package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/tapestry/internal/presentation/tui"
	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/reveal"
)

// ContentRenderer transforms a line before it is written, e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)

// TextHandler implements the interactive terminal interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	current Screen

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so that Input can honor ctx.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Begin(ctx context.Context, screen Screen) error {
	h.current = screen
	_, err := fmt.Fprintf(h.Writer, "\n%s\n\n", tui.Progress(screen.Progress, domain.ProgressStages))
	return err
}

func (h *TextHandler) Line(ctx context.Context, cue reveal.Cue) error {
	if h.current.Snapshot.IsTitle() && cue.Index == 0 {
		_, err := fmt.Fprintln(h.Writer, tui.Title(cue.Text))
		return err
	}

	output := cue.Text
	if h.Renderer != nil {
		if rendered, err := h.Renderer(cue.Text); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimRight(output, "\n"))
	return err
}

func (h *TextHandler) Write(ctx context.Context, fragment string) error {
	_, err := io.WriteString(h.Writer, fragment)
	return err
}

func (h *TextHandler) EndLine(ctx context.Context) error {
	_, err := fmt.Fprintln(h.Writer)
	return err
}

func (h *TextHandler) Controls(ctx context.Context, screen Screen) error {
	snap := screen.Snapshot
	fmt.Fprintln(h.Writer)
	if snap.Flags.ShowChoices {
		for i, c := range snap.Node.Choices {
			fmt.Fprintln(h.Writer, tui.Choice(i+1, c.Label, c.Label == snap.ChoiceSelected))
		}
	}
	if aff := tui.Affordance(screen.Affordance); aff != "" {
		fmt.Fprintln(h.Writer, aff)
	}
	return nil
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}
			clean, err := SanitizeInput(res.text)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[%s]\n", msg)
	return err
}
