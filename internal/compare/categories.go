package compare

import (
	"fmt"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
)

type changeCategory struct {
	breaking bool
	severity Severity
	// Only set for breaking kinds.
	impact     Impact
	mitigation string
}

var categories = map[ChangeKind]changeCategory{
	TypeChanged: {
		breaking: true, severity: SeverityError, impact: ImpactHigh,
		mitigation: "Update all usages to handle the new type",
	},
	FieldRemoved: {
		breaking: true, severity: SeverityError, impact: ImpactHigh,
		mitigation: "Remove all usages, or make optional before removal",
	},
	RequiredFieldAdded: {
		breaking: true, severity: SeverityError, impact: ImpactHigh,
		mitigation: "Provide a default value or make the field optional",
	},
	UnionVariantRemoved: {
		breaking: true, severity: SeverityError, impact: ImpactHigh,
		mitigation: "Ensure existing data does not use removed variants",
	},
	EnumValueRemoved: {
		breaking: true, severity: SeverityError, impact: ImpactHigh,
		mitigation: "Migrate existing data off the removed value",
	},
	ConstraintAdded: {
		breaking: true, severity: SeverityWarning, impact: ImpactMedium,
		mitigation: "Ensure existing data satisfies the new constraint",
	},
	FieldAdded:        {severity: SeverityInfo},
	ConstraintRemoved: {severity: SeverityInfo},
	EnumValueAdded:    {severity: SeverityInfo},
	UnionVariantAdded: {severity: SeverityInfo},
}

// Additions and deletions for the summary. Everything else is a modification.
var (
	additionKinds = []ChangeKind{FieldAdded, RequiredFieldAdded, EnumValueAdded, UnionVariantAdded, ConstraintAdded}
	deletionKinds = []ChangeKind{FieldRemoved, EnumValueRemoved, UnionVariantRemoved, ConstraintRemoved}
)

func categoryOf(kind ChangeKind) changeCategory {
	c, ok := categories[kind]
	contract.Assertf(ok, "unknown change kind %q", kind)
	return c
}

// newChange stamps severity and breaking from the taxonomy.
func newChange(kind ChangeKind, path, from, to, msg string, a ...any) Change {
	c := categoryOf(kind)
	return Change{
		Kind:     kind,
		Path:     path,
		From:     from,
		To:       to,
		Message:  fmt.Sprintf(msg, a...),
		Severity: c.severity,
		Breaking: c.breaking,
	}
}
