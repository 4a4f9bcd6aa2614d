package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/trigger"
)

// GenerateMermaid produces a Mermaid flowchart of the binding table.
// It applies semantic styling:
// - Trigger: [/Parallelogram/]
// - Action: [Rectangle]
// - Subsystem: [[Subroutine]]
// Held edges (while_true, while_false) are dotted. If snapshot is non-nil
// the subsystems it lists as owned are styled busy.
func GenerateMermaid(bindings []trigger.BindingInfo, snapshot *domain.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	seen := make(map[string]bool)
	declare := func(id, opener, label, closer string) {
		if seen[id] {
			return
		}
		seen[id] = true
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)
	}

	var subsystems []string
	for _, b := range bindings {
		trig := "t_" + sanitizeMermaidID(b.Trigger)
		// Actions are per binding: two buttons may bind the same action name.
		action := fmt.Sprintf("a%d_%s", b.ID, sanitizeMermaidID(b.Action))

		declare(trig, "[/", b.Trigger, "/]")
		declare(action, "[", b.Action, "]")

		arrow := fmt.Sprintf("-- \"%s\" -->", b.Mode)
		if strings.HasPrefix(b.Mode, "while") {
			arrow = fmt.Sprintf("-. \"%s\" .->", b.Mode)
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", trig, arrow, action)

		for _, req := range b.Requirements {
			sub := "s_" + sanitizeMermaidID(req)
			declare(sub, "[[", req, "]]")
			if !slices.Contains(subsystems, req) {
				subsystems = append(subsystems, req)
			}
			fmt.Fprintf(&sb, "    %s --> %s\n", action, sub)
		}
	}

	if snapshot != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds
		sb.WriteString("    classDef busy fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, sub := range subsystems {
			if _, ok := snapshot.Owners[sub]; ok {
				fmt.Fprintf(&sb, "    class s_%s busy;\n", sanitizeMermaidID(sub))
			}
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", "(", "_", ")", "_", " ", "_", "@", "_")
	return r.Replace(id)
}
