package compare

import "github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"

// Classify derives one BreakingChange per breaking Change, keeping order.
func Classify(changes []Change) []BreakingChange {
	breaking := []BreakingChange{}
	for _, change := range changes {
		if !change.Breaking {
			continue
		}
		c := categoryOf(change.Kind)
		contract.Assertf(c.breaking, "change %q at %s is marked breaking but its kind is not", change.Kind, change.Path)
		breaking = append(breaking, BreakingChange{
			Kind:        change.Kind,
			Path:        change.Path,
			From:        change.From,
			To:          change.To,
			Impact:      c.impact,
			Description: change.Message,
			Mitigation:  c.mitigation,
		})
	}
	return breaking
}
