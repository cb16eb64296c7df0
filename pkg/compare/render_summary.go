package compare

import (
	"fmt"
	"io"
)

// RenderSummary writes summary counts only.
func RenderSummary(out io.Writer, result Result) error {
	s := result.Summary
	if s.TotalChanges == 0 {
		if _, err := fmt.Fprintln(out, "No changes found."); err != nil {
			return fmt.Errorf("write summary output: %w", err)
		}
		return nil
	}

	lines := []struct {
		label string
		count int
	}{
		{"total", s.TotalChanges},
		{"breaking", s.Breaking},
		{"non-breaking", s.NonBreaking},
		{"additions", s.Additions},
		{"deletions", s.Deletions},
		{"modifications", s.Modifications},
	}
	if _, err := fmt.Fprintln(out, "Summary of changes:"); err != nil {
		return fmt.Errorf("write summary output: %w", err)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(out, "- %s: %d\n", l.label, l.count); err != nil {
			return fmt.Errorf("write summary output: %w", err)
		}
	}
	if _, err := fmt.Fprintf(out, "Compatible: %t\n", s.Compatible); err != nil {
		return fmt.Errorf("write summary output: %w", err)
	}
	return nil
}
