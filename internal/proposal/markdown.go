package proposal

import (
	"fmt"
	"strings"
)

// AsMarkdown renders the result as a standalone Markdown document that can
// be downloaded and shared for review as-is.
func (r *DraftResult) AsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Proposal draft\n\n")

	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	if r.Provider != "" {
		fmt.Fprintf(&b, "- Backend: %s\n", r.Provider)
	}
	if r.Model != "" {
		fmt.Fprintf(&b, "- Model: %s\n", r.Model)
	}
	fmt.Fprintf(&b, "- Artifact: %s\n\n", r.Kind)

	if r.Text != "" {
		switch r.Kind {
		case KindShort:
			b.WriteString("## Proposal (short)\n\n")
		case KindLong:
			b.WriteString("## Proposal (long)\n\n")
		default:
			b.WriteString("## Text\n\n")
		}
		b.WriteString(r.Text)
		b.WriteString("\n\n")
	}

	if len(r.Evidence) > 0 {
		b.WriteString("## Rationale (quoted evidence)\n\n")
		for _, ev := range r.Evidence {
			src := string(ev.Source)
			if src == "" {
				src = "unattributed"
			}
			fmt.Fprintf(&b, "- [%s] %q", src, ev.Quote)
			if ev.Note != "" {
				fmt.Fprintf(&b, " (%s)", ev.Note)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.Checklist) > 0 {
		b.WriteString("## Pre-send checklist\n\n")
		for _, item := range r.Checklist {
			label := "Should"
			if item.Priority == PriorityMust {
				label = "Must"
			}
			fmt.Fprintf(&b, "- [ ] %s: %s\n", label, item.Text)
		}
		b.WriteString("\n")
	}

	if len(r.Questions) > 0 {
		b.WriteString("## Follow-up questions\n\n")
		for _, q := range r.Questions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
		b.WriteString("\n")
	}

	if r.Note != "" {
		b.WriteString("## Raw output (not parsed)\n\n")
		b.WriteString(r.Note)
		b.WriteString("\n")
	}

	return b.String()
}
