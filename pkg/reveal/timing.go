package reveal

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTiming is returned when a Timing cannot guarantee ordered lines.
var ErrInvalidTiming = errors.New("invalid reveal timing")

// Timing holds the rendering constants of a reveal.
type Timing struct {
	// CharDelay is the time between two characters of a line.
	CharDelay time.Duration
	// LineGap is added after a line's characters before the next line starts.
	LineGap time.Duration
	// CharFade is how long a single character takes to appear.
	CharFade time.Duration
}

// DefaultTiming is the body text timing.
var DefaultTiming = Timing{
	CharDelay: 30 * time.Millisecond,
	LineGap:   300 * time.Millisecond,
	CharFade:  100 * time.Millisecond,
}

// Title screen constants.
const (
	TitleCharDelay    = 50 * time.Millisecond
	TitlePause        = 500 * time.Millisecond
	SubtitleCharDelay = 30 * time.Millisecond
	SubtitleGap       = 200 * time.Millisecond
)

// ChoiceDelay separates the entrance of consecutive choice buttons.
const ChoiceDelay = 80 * time.Millisecond

// Validate checks that successive lines cannot overlap.
func (t Timing) Validate() error {
	if t.CharDelay < 0 {
		return fmt.Errorf("%w: negative char delay %s", ErrInvalidTiming, t.CharDelay)
	}
	if t.LineGap <= 0 {
		return fmt.Errorf("%w: line gap must be positive, got %s", ErrInvalidTiming, t.LineGap)
	}
	if t.CharFade <= 0 {
		return fmt.Errorf("%w: char fade must be positive, got %s", ErrInvalidTiming, t.CharFade)
	}
	return nil
}

// Scale multiplies every duration by f. Zero yields an instant reveal
// that still keeps lines ordered.
func (t Timing) Scale(f float64) Timing {
	scaled := Timing{
		CharDelay: time.Duration(float64(t.CharDelay) * f),
		LineGap:   time.Duration(float64(t.LineGap) * f),
		CharFade:  time.Duration(float64(t.CharFade) * f),
	}
	if scaled.LineGap <= 0 {
		scaled.LineGap = time.Nanosecond
	}
	if scaled.CharFade <= 0 {
		scaled.CharFade = time.Nanosecond
	}
	return scaled
}
