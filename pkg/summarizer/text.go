package summarizer

import (
	"fmt"
	"strings"
)

// TextFormatter formats a Summary as plain console text.
type TextFormatter struct{}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format converts the summary to plain text.
func (f *TextFormatter) Format(summary *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s via %s, %dx%d, effect %s\n",
		summary.Session.Source, summary.Session.Processor,
		summary.Session.Width, summary.Session.Height, summary.Session.Effect)
	if summary.Session.Degraded {
		b.WriteString("Rendering degraded after GL failure\n")
	}

	fr := summary.Frames
	fmt.Fprintf(&b, "Frames: %d received, %d overwritten, %d dropped, %d rejected\n",
		fr.Received, fr.Overwritten, fr.Dropped, fr.Rejected)
	fmt.Fprintf(&b, "Processed: %d ok, %d errors, %d uploaded\n",
		fr.Processed, fr.Errors, fr.Uploaded)
	fmt.Fprintf(&b, "Draws: %d calls, %d effect switches\n",
		fr.DrawCalls, fr.EffectSwitches)
	fmt.Fprintf(&b, "Duration: %d ms (%.1f fps)\n",
		summary.Timing.DurationMs, summary.Timing.AverageFPS)

	return b.String()
}
