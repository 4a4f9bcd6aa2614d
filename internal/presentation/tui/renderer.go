package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/cmdbot/pkg/trigger"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// BindingsMarkdown lays the binding table and its hazards out as markdown.
func BindingsMarkdown(bindings []trigger.BindingInfo, hazards []trigger.Hazard) string {
	var b strings.Builder
	b.WriteString("# Bindings\n\n")
	b.WriteString("| # | Trigger | Mode | Action | Requires |\n")
	b.WriteString("|---|---------|------|--------|----------|\n")
	for _, info := range bindings {
		fmt.Fprintf(&b, "| %d | `%s` | %s | %s | %s |\n",
			info.ID, info.Trigger, info.Mode, info.Action, strings.Join(info.Requirements, ", "))
	}

	if len(hazards) == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n## Hazards (%d)\n\n", len(hazards))
	for _, h := range hazards {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	return b.String()
}

// WriteMarkdown renders markdown through glamour when w is a terminal and
// writes it verbatim otherwise.
func WriteMarkdown(w io.Writer, markdown string) error {
	if !IsTerminal(w) {
		_, err := io.WriteString(w, markdown)
		return err
	}
	out, err := NewRenderer()(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
