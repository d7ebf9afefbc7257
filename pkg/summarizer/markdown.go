package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts the summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Preview Session Summary\n\n")
	fmt.Fprintf(&b, "Generated at %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("## Session\n\n")
	fmt.Fprintf(&b, "- Source: %s\n", summary.Session.Source)
	fmt.Fprintf(&b, "- Processor: %s\n", summary.Session.Processor)
	fmt.Fprintf(&b, "- Resolution: %dx%d\n", summary.Session.Width, summary.Session.Height)
	fmt.Fprintf(&b, "- Effect: %s\n", summary.Session.Effect)
	if summary.Session.Degraded {
		b.WriteString("- Rendering: degraded (clear-only)\n")
	}
	b.WriteString("\n")

	b.WriteString("## Frames\n\n")
	fr := summary.Frames
	fmt.Fprintf(&b, "| Metric | Count |\n")
	fmt.Fprintf(&b, "|--------|-------|\n")
	fmt.Fprintf(&b, "| Received | %d |\n", fr.Received)
	fmt.Fprintf(&b, "| Overwritten | %d |\n", fr.Overwritten)
	fmt.Fprintf(&b, "| Dropped | %d |\n", fr.Dropped)
	fmt.Fprintf(&b, "| Rejected | %d |\n", fr.Rejected)
	fmt.Fprintf(&b, "| Processed | %d |\n", fr.Processed)
	fmt.Fprintf(&b, "| Processing errors | %d |\n", fr.Errors)
	fmt.Fprintf(&b, "| Uploaded | %d |\n", fr.Uploaded)
	fmt.Fprintf(&b, "| Draw calls | %d |\n", fr.DrawCalls)
	fmt.Fprintf(&b, "| Effect switches | %d |\n", fr.EffectSwitches)
	b.WriteString("\n")

	b.WriteString("## Timing\n\n")
	fmt.Fprintf(&b, "- Duration: %d ms\n", summary.Timing.DurationMs)
	fmt.Fprintf(&b, "- Average FPS: %.1f\n", summary.Timing.AverageFPS)

	return b.String()
}
