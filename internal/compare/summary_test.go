package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	changes := []Change{
		newChange(FieldRemoved, "root.a", "string", "", "a"),
		newChange(FieldAdded, "root.b", "", "optional", "b"),
		newChange(RequiredFieldAdded, "root.c", "", "string", "c"),
		newChange(TypeChanged, "root.d", "string", "number", "d"),
		newChange(ConstraintAdded, "root.e", "0", "1", "e"),
		newChange(ConstraintRemoved, "root.f", "1", "0", "f"),
		newChange(EnumValueRemoved, "root.g", "x", "", "g"),
		newChange(UnionVariantAdded, "root.h", "1", "2", "h"),
	}
	breaking := Classify(changes)

	assert.Equal(t, Summary{
		TotalChanges:  8,
		Breaking:      5,
		NonBreaking:   3,
		Additions:     4,
		Deletions:     3,
		Modifications: 1,
		Compatible:    false,
	}, Summarize(changes, breaking))
}

func TestSummarizeCompatibleFollowsBreakingList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Summary{Compatible: true}, Summarize([]Change{}, []BreakingChange{}))

	changes := []Change{newChange(FieldRemoved, "root.a", "string", "", "a")}
	s := Summarize(changes, nil)
	assert.True(t, s.Compatible)
	assert.Equal(t, 1, s.Breaking)
	assert.Equal(t, 1, s.Deletions)
}
