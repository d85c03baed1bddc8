package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _____                       _              ", "#818cf8"},
	{"|_   _|_ _ _ __   ___  ___| |_ _ __ _   _ ", "#a78bfa"},
	{"  | |/ _` | '_ \\ / _ \\/ __| __| '__| | | |", "#c084fc"},
	{"  | | (_| | |_) |  __/\\__ \\ |_| |  | |_| |", "#e879f9"},
	{"  |_|\\__,_| .__/ \\___||___/\\__|_|   \\__, |", "#f472b6"},
	{"          |_|                       |___/ ", "#fb7185"},
}

// PrintBanner writes the Tapestry ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
