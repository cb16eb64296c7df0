package compare

import (
	"fmt"
	"strings"

	"github.com/pulumi/inflector"
)

// RenderMigrationGuide renders breaking changes, then the remaining
// non-breaking changes, both in discovery order. It has no side effects.
func RenderMigrationGuide(changes []Change, breaking []BreakingChange) string {
	out := &strings.Builder{}
	fmt.Fprintf(out, "# Migration Guide\n\n")

	if len(breaking) == 0 {
		fmt.Fprintln(out, "Looking good! No breaking changes found.")
	} else {
		fmt.Fprintf(out, "Found %s:\n", countOf(len(breaking), "breaking change"))
		for i, b := range breaking {
			fmt.Fprintf(out, "\n## %d. %s at `%s`\n\n", i+1, b.Kind, b.Path)
			fmt.Fprintf(out, "- Impact: %s\n", b.Impact)
			fmt.Fprintf(out, "- Description: %s\n", b.Description)
			if b.Mitigation != "" {
				fmt.Fprintf(out, "- Mitigation: %s\n", b.Mitigation)
			}
		}
	}

	var nonBreaking []Change
	for _, c := range changes {
		if !c.Breaking {
			nonBreaking = append(nonBreaking, c)
		}
	}
	if len(nonBreaking) > 0 {
		fmt.Fprintf(out, "\n## Non-breaking changes\n\n")
		for _, c := range nonBreaking {
			fmt.Fprintf(out, "- %s `%s`: %s\n", c.Kind, c.Path, c.Message)
		}
	}
	return out.String()
}

// countOf formats "1 breaking change" or "3 breaking changes".
func countOf(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	words := strings.Fields(noun)
	last := len(words) - 1
	words[last] = inflector.Pluralize(words[last])
	return fmt.Sprintf("%d %s", n, strings.Join(words, " "))
}
