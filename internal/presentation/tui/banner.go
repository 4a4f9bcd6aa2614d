package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the cmdbot banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                     _ _           _   ", "#f59e0b"},
		{"   ___ _ __ ___   __| | |__   ___ | |_ ", "#f97316"},
		{"  / __| '_ ` _ \\ / _` | '_ \\ / _ \\| __|", "#ef4444"},
		{" | (__| | | | | | (_| | |_) | (_) | |_ ", "#3b82f6"},
		{"  \\___|_| |_| |_|\\__,_|_.__/ \\___/ \\__|", "#6366f1"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
