package worker

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/healthbutler/swarm/pkg/models"
)

var titleCaser = cases.Title(language.English)

// renderContext flattens context entries into a prompt section. Entry order
// is preserved; side-context keys are sorted for stable output.
func renderContext(entries []models.ContextEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("## Context\n")
	for _, e := range entries {
		switch e.Kind {
		case models.ContextMedia:
			fmt.Fprintf(&sb, "- Attached media: %s\n", e.Ref)
		case models.ContextSide:
			sb.WriteString("- User context:\n")
			keys := make([]string, 0, len(e.Payload))
			for k := range e.Payload {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(&sb, "    %s: %s\n", k, e.Payload[k])
			}
		case models.ContextPreviousResult:
			fmt.Fprintf(&sb, "- %s analysis from an earlier step:\n%s\n", titleCaser.String(string(e.Origin)), indent(e.Content))
		}
	}
	return sb.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}

// composePrompt joins the task with its rendered context.
func composePrompt(task string, entries []models.ContextEntry) string {
	rendered := renderContext(entries)
	if rendered == "" {
		return task
	}
	return task + "\n\n" + rendered
}
