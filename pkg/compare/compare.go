package compare

import (
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"

	internalcompare "github.com/pulumi/schema-diff/internal/compare"
	"github.com/pulumi/schema-diff/pkg/schema"
)

// Diff computes every structural difference between two schema versions.
//
// Both graphs must be well formed (see schema.Graph.Validate); a malformed
// graph is a caller bug and panics. Diff performs no I/O and keeps no state
// between calls, so independent calls may run concurrently.
func Diff(oldSchema, newSchema *schema.Graph, opts Options) Result {
	contract.Requiref(oldSchema != nil, "oldSchema", "must not be nil")
	contract.Requiref(newSchema != nil, "newSchema", "must not be nil")
	err := oldSchema.Validate()
	contract.Requiref(err == nil, "oldSchema", "%v", err)
	err = newSchema.Validate()
	contract.Requiref(err == nil, "newSchema", "%v", err)

	changes := internalcompare.Compare(oldSchema, newSchema)

	breaking := []BreakingChange{}
	if opts.DetectBreaking {
		breaking = internalcompare.Classify(changes)
	}

	result := Result{
		Changes:         changes,
		BreakingChanges: breaking,
		Summary:         internalcompare.Summarize(changes, breaking),
	}
	if opts.GenerateMigration {
		result.MigrationGuide = internalcompare.RenderMigrationGuide(changes, breaking)
	}
	return result
}
