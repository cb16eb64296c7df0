package compare

import internalcompare "github.com/pulumi/schema-diff/internal/compare"

type (
	Change         = internalcompare.Change
	ChangeKind     = internalcompare.ChangeKind
	BreakingChange = internalcompare.BreakingChange
	Summary        = internalcompare.Summary
	Severity       = internalcompare.Severity
	Impact         = internalcompare.Impact
)

const (
	FieldAdded          = internalcompare.FieldAdded
	RequiredFieldAdded  = internalcompare.RequiredFieldAdded
	FieldRemoved        = internalcompare.FieldRemoved
	TypeChanged         = internalcompare.TypeChanged
	ConstraintAdded     = internalcompare.ConstraintAdded
	ConstraintRemoved   = internalcompare.ConstraintRemoved
	EnumValueAdded      = internalcompare.EnumValueAdded
	EnumValueRemoved    = internalcompare.EnumValueRemoved
	UnionVariantAdded   = internalcompare.UnionVariantAdded
	UnionVariantRemoved = internalcompare.UnionVariantRemoved

	SeverityInfo    = internalcompare.SeverityInfo
	SeverityWarning = internalcompare.SeverityWarning
	SeverityError   = internalcompare.SeverityError

	ImpactHigh   = internalcompare.ImpactHigh
	ImpactMedium = internalcompare.ImpactMedium
	ImpactLow    = internalcompare.ImpactLow
)

// Options configures Diff. Use DefaultOptions as the starting point; the
// zero value disables breaking-change detection and the migration guide.
type Options struct {
	// DetectBreaking classifies breaking changes into Result.BreakingChanges.
	DetectBreaking bool
	// GenerateMigration renders Result.MigrationGuide.
	GenerateMigration bool
	// StrictMode is reserved for stricter rules and currently has no effect.
	StrictMode bool
}

// DefaultOptions detects breaking changes and renders the migration guide.
func DefaultOptions() Options {
	return Options{DetectBreaking: true, GenerateMigration: true}
}

// Result is the structured output of schema comparison.
type Result struct {
	Changes         []Change         `json:"changes"`
	BreakingChanges []BreakingChange `json:"breakingChanges"`
	Summary         Summary          `json:"summary"`
	MigrationGuide  string           `json:"migrationGuide,omitempty"`
}
