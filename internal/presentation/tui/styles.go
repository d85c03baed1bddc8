package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tapestry/pkg/domain"
	"github.com/muesli/termenv"
)

var profile = termenv.ColorProfile()

// SetProfile forces a color profile. termenv.Ascii disables styling.
func SetProfile(p termenv.Profile) {
	profile = p
}

// Progress draws the progress indicator, one dot per stage.
func Progress(stage, stages int) string {
	var b strings.Builder
	for i := range stages {
		if i <= stage {
			b.WriteString(profile.String("●").Foreground(profile.Color("#c084fc")).String())
		} else {
			b.WriteString(profile.String("○").Faint().String())
		}
	}
	return b.String()
}

// Title styles the title line of a title screen.
func Title(text string) string {
	return profile.String(text).Bold().Foreground(profile.Color("#e879f9")).String()
}

// Choice styles one choice button. Numbers start at 1.
func Choice(n int, label string, selected bool) string {
	s := profile.String(fmt.Sprintf("  [%d] %s", n, label))
	if selected {
		return s.Bold().Foreground(profile.Color("#f472b6")).String()
	}
	return s.Foreground(profile.Color("#a78bfa")).String()
}

// Affordance describes the bottom control, or "" when there is none.
func Affordance(a domain.Affordance) string {
	var text string
	switch a {
	case domain.AffordanceStart:
		text = "press enter to begin"
	case domain.AffordanceContinue:
		text = "press enter to continue"
	case domain.AffordanceCloseLetter:
		text = "press enter to close the letter"
	default:
		return ""
	}
	return profile.String(text).Faint().Italic().String()
}
