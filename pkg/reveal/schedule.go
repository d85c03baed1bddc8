// Package reveal computes when each line of a screen appears and tracks
// when a renderer has shown all of them.
//
// Nothing here owns a timer. A Plan is pure data that a renderer can
// replay with whatever clock it has.
package reveal

import (
	"time"
	"unicode/utf8"
)

// Cue is the reveal window of one visible line.
type Cue struct {
	// Index is the position among visible lines.
	Index int
	// Source is the position in the raw lines, empty entries included.
	Source int
	Text   string
	Start  time.Duration
	// Duration covers every character start of the line.
	Duration time.Duration
}

// End is when the line's last character has started.
func (c Cue) End() time.Duration {
	return c.Start + c.Duration
}

// Plan is the full reveal of a screen.
type Plan struct {
	Cues []Cue
	// Done is when the last character has finished fading in.
	Done time.Duration
}

// Len is the number of visible lines.
func (p Plan) Len() int {
	return len(p.Cues)
}

// Schedule lays out lines from offset zero.
func Schedule(lines []string, t Timing) Plan {
	return ScheduleFrom(0, lines, t)
}

// ScheduleFrom lays out lines starting at start. Empty lines are skipped
// and never timed. Each line starts after the previous one's characters
// plus t.LineGap.
func ScheduleFrom(start time.Duration, lines []string, t Timing) Plan {
	plan := Plan{Done: start}
	offset := start
	for src, line := range lines {
		if line == "" {
			continue
		}
		cue := Cue{
			Index:    len(plan.Cues),
			Source:   src,
			Text:     line,
			Start:    offset,
			Duration: time.Duration(utf8.RuneCountInString(line)) * t.CharDelay,
		}
		plan.Cues = append(plan.Cues, cue)
		plan.Done = cue.End() + t.CharFade
		offset = cue.End() + t.LineGap
	}
	return plan
}

// TitleSchedule lays out a title screen: the first visible line is the
// title, revealed slowly, and the rest are subtitles after a pause.
func TitleSchedule(lines []string, t Timing) Plan {
	var (
		title string
		src   = -1
	)
	for i, line := range lines {
		if line != "" {
			title, src = line, i
			break
		}
	}
	if src < 0 {
		return Plan{}
	}

	head := Cue{
		Index:    0,
		Source:   src,
		Text:     title,
		Duration: time.Duration(utf8.RuneCountInString(title)) * TitleCharDelay,
	}

	sub := Timing{CharDelay: SubtitleCharDelay, LineGap: SubtitleGap, CharFade: t.CharFade}
	rest := make([]string, len(lines))
	copy(rest[src+1:], lines[src+1:])
	tail := ScheduleFrom(head.End()+TitlePause, rest, sub)

	plan := Plan{Cues: []Cue{head}, Done: head.End() + t.CharFade}
	for _, c := range tail.Cues {
		c.Index++
		plan.Cues = append(plan.Cues, c)
	}
	if tail.Len() > 0 {
		plan.Done = tail.Done
	}
	return plan
}

// CharOffsets returns the start offset of every rune of text.
func CharOffsets(text string, start, speed time.Duration) []time.Duration {
	offsets := make([]time.Duration, 0, utf8.RuneCountInString(text))
	i := 0
	for range text {
		offsets = append(offsets, start+time.Duration(i)*speed)
		i++
	}
	return offsets
}

// ChoiceStagger is the entrance delay of the i-th choice.
func ChoiceStagger(i int) time.Duration {
	if i < 0 {
		return 0
	}
	return time.Duration(i) * ChoiceDelay
}
