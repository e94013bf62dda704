package runner

import (
	"fmt"
	"strconv"
	"strings"
)

// Report formats a result as Markdown for rich terminals.
func Report(result *Result) string {
	var b strings.Builder
	b.WriteString("# Simulation report\n\n")

	fmt.Fprintf(&b, "- **Turns:** %d\n", result.Turns)
	fmt.Fprintf(&b, "- **Stopped:** %s\n", result.Reason)
	if result.Ended {
		score := "n/a"
		if result.Score != nil {
			score = strconv.FormatFloat(*result.Score, 'f', -1, 64)
		}
		fmt.Fprintf(&b, "- **Score:** %s\n", score)
		if result.ReplayURL != "" {
			fmt.Fprintf(&b, "- **Replay:** <%s>\n", SanitizeMessage(result.ReplayURL))
		}
	} else {
		b.WriteString("- **Score:** not reported, the simulation did not finish\n")
	}
	if result.Err != nil {
		fmt.Fprintf(&b, "- **Error:** `%s`\n", SanitizeMessage(result.Err.Error()))
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "\n## Simulator errors (%d)\n\n", len(result.Warnings))
		for _, w := range result.Warnings {
			fmt.Fprintf(&b, "- turn %d: %s\n", w.Turn, SanitizeMessage(w.Message))
		}
	}
	return b.String()
}
