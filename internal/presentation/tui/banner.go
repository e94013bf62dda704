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
	{`      _ _             _   _ `, "#38bdf8"},
	{`   __| (_) __ _ _ __ | |_(_)`, "#22d3ee"},
	{`  / _' | |/ _' | '_ \| __| |`, "#2dd4bf"},
	{` | (_| | | (_| | | | | |_| |`, "#34d399"},
	{`  \__,_|_|\__,_|_| |_|\__|_|`, "#4ade80"},
}

// PrintBanner writes the ASCII banner and version to w.
// Colors degrade to whatever the terminal supports.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  elevator simulation client "+version).Faint())
	fmt.Fprintln(w)
}
