package compare

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/schema-diff/pkg/schema"
)

func build(fn func(g *schema.Graph) schema.NodeID) *schema.Graph {
	g := schema.New()
	g.SetRoot(fn(g))
	return g
}

func object(names ...string) func(g *schema.Graph) schema.NodeID {
	return func(g *schema.Graph) schema.NodeID {
		fields := make([]schema.Field, len(names))
		for i, name := range names {
			fields[i] = schema.FieldOf(name, g.Primitive(schema.String))
		}
		return g.Object(fields...)
	}
}

func TestDiffScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		old, new   *schema.Graph
		kind       ChangeKind
		path       string
		breaking   bool
		impact     Impact
		compatible bool
	}{
		{
			name:     "field removed",
			old:      build(object("id", "name")),
			new:      build(object("id")),
			kind:     FieldRemoved,
			path:     "root.name",
			breaking: true,
			impact:   ImpactHigh,
		},
		{
			name: "optional field added",
			old:  build(object("id")),
			new: build(func(g *schema.Graph) schema.NodeID {
				return g.Object(
					schema.FieldOf("id", g.Primitive(schema.String)),
					schema.FieldOf("email", g.Optional(g.Primitive(schema.String))),
				)
			}),
			kind:       FieldAdded,
			path:       "root.email",
			compatible: true,
		},
		{
			name: "enum value removed",
			old: build(func(g *schema.Graph) schema.NodeID {
				return g.Enum("A", "B", "C")
			}),
			new: build(func(g *schema.Graph) schema.NodeID {
				return g.Enum("A", "C")
			}),
			kind:     EnumValueRemoved,
			path:     "root",
			breaking: true,
			impact:   ImpactHigh,
		},
		{
			name: "constraint added",
			old: build(func(g *schema.Graph) schema.NodeID {
				return g.Primitive(schema.String)
			}),
			new: build(func(g *schema.Graph) schema.NodeID {
				return g.Primitive(schema.String, schema.Constraint{Kind: "minLength", Value: 3})
			}),
			kind:     ConstraintAdded,
			path:     "root",
			breaking: true,
			impact:   ImpactMedium,
		},
		{
			name: "union variant added",
			old: build(func(g *schema.Graph) schema.NodeID {
				return g.Union(g.Primitive(schema.String), g.Primitive(schema.Number))
			}),
			new: build(func(g *schema.Graph) schema.NodeID {
				return g.Union(g.Primitive(schema.String), g.Primitive(schema.Number), g.Primitive(schema.Boolean))
			}),
			kind:       UnionVariantAdded,
			path:       "root",
			compatible: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := Diff(tt.old, tt.new, DefaultOptions())

			require.Len(t, result.Changes, 1)
			change := result.Changes[0]
			assert.Equal(t, tt.kind, change.Kind)
			assert.Equal(t, tt.path, change.Path)
			assert.Equal(t, tt.breaking, change.Breaking)
			assert.Equal(t, tt.compatible, result.Summary.Compatible)
			assert.Equal(t, 1, result.Summary.TotalChanges)

			if tt.breaking {
				require.Len(t, result.BreakingChanges, 1)
				assert.Equal(t, tt.impact, result.BreakingChanges[0].Impact)
			} else {
				assert.Empty(t, result.BreakingChanges)
			}
			assert.Equal(t, result.Summary.Compatible, len(result.BreakingChanges) == 0)
			assert.NotEmpty(t, result.MigrationGuide)
		})
	}
}

func TestDiffEnumValueRemovedCarriesValue(t *testing.T) {
	t.Parallel()

	result := Diff(
		build(func(g *schema.Graph) schema.NodeID { return g.Enum("A", "B", "C") }),
		build(func(g *schema.Graph) schema.NodeID { return g.Enum("A", "C") }),
		DefaultOptions())

	require.Len(t, result.BreakingChanges, 1)
	assert.Equal(t, "B", result.BreakingChanges[0].From)
	assert.Equal(t, "Migrate existing data off the removed value", result.BreakingChanges[0].Mitigation)
}

func TestDiffReflexive(t *testing.T) {
	t.Parallel()

	s := build(func(g *schema.Graph) schema.NodeID {
		node := g.Reserve()
		g.Define(node, schema.Object{Fields: []schema.Field{
			schema.FieldOf("id", g.Primitive(schema.String, schema.Constraint{Kind: "uuid"})),
			schema.FieldOf("kind", g.Enum("a", "b")),
			schema.FieldOf("parent", g.Nullable(node)),
			schema.FieldOf("children", g.Array(node)),
		}})
		return node
	})

	result := Diff(s, s, DefaultOptions())
	assert.Empty(t, result.Changes)
	assert.Empty(t, result.BreakingChanges)
	assert.True(t, result.Summary.Compatible)
}

func TestDiffOptions(t *testing.T) {
	t.Parallel()

	oldSchema, newSchema := build(object("id", "name")), build(object("id"))

	t.Run("skip breaking detection", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		opts.DetectBreaking = false
		result := Diff(oldSchema, newSchema, opts)

		require.Len(t, result.Changes, 1)
		assert.True(t, result.Changes[0].Breaking)
		assert.Equal(t, []BreakingChange{}, result.BreakingChanges)
		assert.True(t, result.Summary.Compatible)
		assert.Equal(t, 1, result.Summary.Breaking)
	})

	t.Run("skip migration guide", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		opts.GenerateMigration = false
		result := Diff(oldSchema, newSchema, opts)

		assert.Empty(t, result.MigrationGuide)
		assert.Len(t, result.BreakingChanges, 1)
	})

	t.Run("strict mode is accepted", func(t *testing.T) {
		t.Parallel()
		opts := DefaultOptions()
		opts.StrictMode = true
		if diff := cmp.Diff(Diff(oldSchema, newSchema, DefaultOptions()), Diff(oldSchema, newSchema, opts)); diff != "" {
			t.Fatalf("strict mode changed the result (-default +strict):\n%s", diff)
		}
	})
}

func TestDiffIsDeterministic(t *testing.T) {
	t.Parallel()

	mk := func() (*schema.Graph, *schema.Graph) {
		oldSchema := build(func(g *schema.Graph) schema.NodeID {
			return g.Object(
				schema.FieldOf("a", g.Enum("x", "y", "z")),
				schema.FieldOf("b", g.Array(g.Object(schema.FieldOf("c", g.Primitive(schema.Number))))),
				schema.FieldOf("d", g.Primitive(schema.String)),
				schema.FieldOf("e", g.Union(g.Primitive(schema.String), g.Primitive(schema.Date))),
			)
		})
		newSchema := build(func(g *schema.Graph) schema.NodeID {
			return g.Object(
				schema.FieldOf("f", g.Primitive(schema.Boolean)),
				schema.FieldOf("a", g.Enum("y", "w")),
				schema.FieldOf("b", g.Array(g.Object(schema.FieldOf("c", g.Primitive(schema.String))))),
				schema.FieldOf("e", g.Union(g.Primitive(schema.String))),
				schema.FieldOf("g", g.Optional(g.Primitive(schema.Number))),
			)
		})
		return oldSchema, newSchema
	}

	diff := func() Result {
		oldSchema, newSchema := mk()
		return Diff(oldSchema, newSchema, DefaultOptions())
	}

	first := diff()
	for i := 0; i < 10; i++ {
		if d := cmp.Diff(first, diff()); d != "" {
			t.Fatalf("non-deterministic result (-first +next):\n%s", d)
		}
	}
}

func TestDiffConcurrentCalls(t *testing.T) {
	t.Parallel()

	oldSchema, newSchema := build(object("id", "name", "email")), build(object("id"))
	expected := Diff(oldSchema, newSchema, DefaultOptions())

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Diff(oldSchema, newSchema, DefaultOptions())
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}

func TestDiffRejectsMalformedSchema(t *testing.T) {
	t.Parallel()

	valid := build(object("id"))
	noRoot := schema.New()
	noRoot.Object()
	emptyUnion := build(func(g *schema.Graph) schema.NodeID { return g.Union() })

	assert.Panics(t, func() { Diff(valid, noRoot, DefaultOptions()) })
	assert.Panics(t, func() { Diff(emptyUnion, valid, DefaultOptions()) })
	assert.Panics(t, func() { Diff(nil, valid, DefaultOptions()) })
}
