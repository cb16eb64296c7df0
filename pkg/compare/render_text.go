package compare

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pulumi/inflector"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"

	internalcompare "github.com/pulumi/schema-diff/internal/compare"
	"github.com/pulumi/schema-diff/internal/util/diagtree"
)

// RenderText writes a human-readable report: a headline, every change
// grouped by path (at most maxChanges lines, -1 for all), and a verdict.
func RenderText(out io.Writer, result Result, maxChanges int) {
	fmt.Fprintf(out, "### Does the schema have any breaking changes?\n\n")
	switch n := len(result.BreakingChanges); n {
	case 0:
		fmt.Fprintln(out, "Looking good! No breaking changes found.")
	case 1:
		fmt.Fprintln(out, "Found 1 breaking change:")
	default:
		fmt.Fprintf(out, "Found %d breaking %s:\n", n, inflector.Pluralize("change"))
	}

	displayed := new(bytes.Buffer)
	changesTree(result.Changes).Display(displayed, maxChanges)
	if displayed.Len() > 0 {
		fmt.Fprintln(out)
		_, err := out.Write(displayed.Bytes())
		contract.AssertNoErrorf(err, "writing to a bytes.Buffer failing indicates OOM")
	}

	fmt.Fprintln(out)
	if result.Summary.Compatible {
		color.New(color.FgGreen).Fprintln(out, "Compatible: existing data remains valid.")
	} else {
		color.New(color.FgRed, color.Bold).Fprintln(out, "Incompatible: existing data or consumers may break.")
	}
}

func changesTree(changes []Change) *diagtree.Node {
	root := &diagtree.Node{}
	for _, c := range changes {
		root.Path(internalcompare.PathSegments(c.Path)...).AddNote(severityOf(c.Severity), "%s", c.Message)
	}
	root.Prune()
	return root
}

func severityOf(s Severity) diagtree.Severity {
	switch s {
	case SeverityError:
		return diagtree.Danger
	case SeverityWarning:
		return diagtree.Warn
	case SeverityInfo:
		return diagtree.Info
	}
	return diagtree.None
}
