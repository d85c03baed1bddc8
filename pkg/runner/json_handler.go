package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/aretw0/tapestry/pkg/reveal"
)

// Event types written by JSONHandler.
const (
	JSONScreen   = "screen"
	JSONControls = "controls"
	JSONSystem   = "system"
)

// JSONCue is the timing of one line, in milliseconds.
type JSONCue struct {
	Index      int    `json:"index"`
	Text       string `json:"text"`
	StartMS    int64  `json:"start_ms"`
	DurationMS int64  `json:"duration_ms"`
}

// JSONChoice is one choice button with its entrance delay.
type JSONChoice struct {
	Number   int    `json:"number"`
	Label    string `json:"label"`
	DelayMS  int64  `json:"delay_ms"`
	Selected bool   `json:"selected,omitempty"`
}

// JSONEvent is one line of JSONHandler output.
type JSONEvent struct {
	Type       string            `json:"type"`
	NodeID     string            `json:"node_id,omitempty"`
	NodeType   domain.NodeType   `json:"node_type,omitempty"`
	Epoch      uint64            `json:"epoch"`
	Progress   int               `json:"progress"`
	Cues       []JSONCue         `json:"cues,omitempty"`
	DoneMS     int64             `json:"done_ms,omitempty"`
	Choices    []JSONChoice      `json:"choices,omitempty"`
	Affordance domain.Affordance `json:"affordance,omitempty"`
	Revealed   bool              `json:"revealed,omitempty"`
	Message    string            `json:"message,omitempty"`
}

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// A screen is written once with its full reveal plan; pacing is left to the consumer.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Begin(ctx context.Context, screen Screen) error {
	snap := screen.Snapshot
	evt := JSONEvent{
		Type:     JSONScreen,
		NodeID:   snap.CurrentID,
		NodeType: snap.Node.Type,
		Epoch:    snap.Epoch,
		Progress: screen.Progress,
		DoneMS:   screen.Plan.Done.Milliseconds(),
	}
	for _, c := range screen.Plan.Cues {
		evt.Cues = append(evt.Cues, JSONCue{
			Index:      c.Index,
			Text:       c.Text,
			StartMS:    c.Start.Milliseconds(),
			DurationMS: c.Duration.Milliseconds(),
		})
	}
	return h.Encoder.Encode(evt)
}

// Line is a no-op: the screen event already carries every line.
func (h *JSONHandler) Line(ctx context.Context, cue reveal.Cue) error { return nil }

func (h *JSONHandler) Write(ctx context.Context, fragment string) error { return nil }

func (h *JSONHandler) EndLine(ctx context.Context) error { return nil }

func (h *JSONHandler) Controls(ctx context.Context, screen Screen) error {
	snap := screen.Snapshot
	evt := JSONEvent{
		Type:       JSONControls,
		NodeID:     snap.CurrentID,
		Epoch:      snap.Epoch,
		Progress:   screen.Progress,
		Affordance: screen.Affordance,
		Revealed:   snap.Revealed,
	}
	if snap.Flags.ShowChoices {
		for i, c := range snap.Node.Choices {
			evt.Choices = append(evt.Choices, JSONChoice{
				Number:   i + 1,
				Label:    c.Label,
				DelayMS:  reveal.ChoiceStagger(i).Milliseconds(),
				Selected: c.Label == snap.ChoiceSelected,
			})
		}
	}
	return h.Encoder.Encode(evt)
}

// Input reads one line: a JSON string ("2") or plain text (2).
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		text = val
	}
	return SanitizeInput(text)
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(JSONEvent{Type: JSONSystem, Message: msg})
}
