package compare

// ChangeKind names one entry of the change taxonomy.
type ChangeKind string

const (
	FieldAdded          ChangeKind = "field-added"
	RequiredFieldAdded  ChangeKind = "required-field-added"
	FieldRemoved        ChangeKind = "field-removed"
	TypeChanged         ChangeKind = "type-changed"
	ConstraintAdded     ChangeKind = "constraint-added"
	ConstraintRemoved   ChangeKind = "constraint-removed"
	EnumValueAdded      ChangeKind = "enum-value-added"
	EnumValueRemoved    ChangeKind = "enum-value-removed"
	UnionVariantAdded   ChangeKind = "union-variant-added"
	UnionVariantRemoved ChangeKind = "union-variant-removed"
)

// Severity is how loudly a change is reported.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Impact grades a breaking change.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Change is one structural difference found by the comparator.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	Path     string     `json:"path"`
	From     string     `json:"from,omitempty"`
	To       string     `json:"to,omitempty"`
	Message  string     `json:"message"`
	Severity Severity   `json:"severity"`
	Breaking bool       `json:"breaking"`
}

// BreakingChange explains a breaking Change and how to migrate past it.
type BreakingChange struct {
	Kind        ChangeKind `json:"kind"`
	Path        string     `json:"path"`
	From        string     `json:"from,omitempty"`
	To          string     `json:"to,omitempty"`
	Impact      Impact     `json:"impact"`
	Description string     `json:"description"`
	Mitigation  string     `json:"mitigation,omitempty"`
}

// Summary aggregates a change list.
type Summary struct {
	TotalChanges  int  `json:"totalChanges"`
	Breaking      int  `json:"breaking"`
	NonBreaking   int  `json:"nonBreaking"`
	Additions     int  `json:"additions"`
	Deletions     int  `json:"deletions"`
	Modifications int  `json:"modifications"`
	Compatible    bool `json:"compatible"`
}
