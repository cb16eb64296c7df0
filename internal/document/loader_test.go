package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/schema-diff/pkg/schema"
)

const orderDocument = `
version: 1
root: Order
definitions:
  Order:
    type: object
    properties:
      id: {type: string, constraints: [{kind: minLength, value: 3}]}
      tags: {type: array, items: {type: string}}
      status: {type: enum, values: [A, B]}
      note: {type: optional, inner: {type: string}}
      parent: {type: nullable, inner: Order}
      value: {type: union, variants: [{type: number}, {type: boolean}, {type: date}]}
`

func TestParseDocument(t *testing.T) {
	g, err := Parse([]byte(orderDocument))
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	root, ok := g.Node(g.Root()).(schema.Object)
	require.True(t, ok)

	names := make([]string, len(root.Fields))
	for i, f := range root.Fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"id", "tags", "status", "note", "parent", "value"}, names)

	id := g.Node(root.Fields[0].Node).(schema.Primitive)
	assert.Equal(t, schema.String, id.Type)
	assert.Equal(t, []schema.Constraint{{Kind: "minLength", Value: 3}}, id.Constraints)

	tags := g.Node(root.Fields[1].Node).(schema.Array)
	assert.Equal(t, "string", g.TypeName(tags.Element))

	assert.Equal(t, schema.Enum{Values: []string{"A", "B"}}, g.Node(root.Fields[2].Node))
	assert.Equal(t, "optional", g.TypeName(root.Fields[3].Node))

	parent := g.Node(root.Fields[4].Node).(schema.Nullable)
	assert.Equal(t, g.Root(), parent.Inner, "self reference should resolve to the root node")

	value := g.Node(root.Fields[5].Node).(schema.Union)
	assert.Len(t, value.Variants, 3)
}

func TestParseJSONDocument(t *testing.T) {
	g, err := Parse([]byte(`{
  "root": {
    "type": "object",
    "properties": {
      "zeta": {"type": "string"},
      "alpha": {"type": "number"}
    }
  }
}`))
	require.NoError(t, err)

	root := g.Node(g.Root()).(schema.Object)
	require.Len(t, root.Fields, 2)
	assert.Equal(t, "zeta", root.Fields[0].Name)
	assert.Equal(t, "alpha", root.Fields[1].Name)
}

func TestParseAliasDefinitions(t *testing.T) {
	g, err := Parse([]byte(`
root: Customer
definitions:
  Customer: Person
  Person: {type: object, properties: {name: {type: string}}}
`))
	require.NoError(t, err)
	assert.Equal(t, "object", g.TypeName(g.Root()))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		contains string
	}{
		{name: "empty", input: "  \n", sentinel: ErrDocumentRequired},
		{name: "not yaml", input: "root: [", sentinel: ErrDocumentInvalid},
		{name: "trailing document", input: "root: {type: string}\n---\nroot: {type: string}\n", sentinel: ErrDocumentInvalid, contains: "trailing content"},
		{name: "missing root", input: "version: 1\n", sentinel: ErrDocumentInvalid, contains: "missing root"},
		{name: "unsupported version", input: "version: 2\nroot: {type: string}\n", sentinel: ErrDocumentVersionUnsupported},
		{name: "unknown type", input: "root: {type: map}\n", sentinel: ErrDocumentInvalid, contains: `unknown type "map"`},
		{name: "untyped node", input: "root: {values: [a]}\n", sentinel: ErrDocumentInvalid, contains: "neither type nor $ref"},
		{name: "unknown ref", input: "root: Missing\n", sentinel: ErrDocumentInvalid, contains: `unknown definition "Missing"`},
		{name: "alias loop", input: "root: A\ndefinitions:\n  A: B\n  B: A\n", sentinel: ErrDocumentInvalid, contains: "only refers to itself"},
		{name: "empty union", input: "root: {type: union}\n", sentinel: ErrDocumentInvalid, contains: "at least one variant"},
		{name: "array without items", input: "root: {type: array}\n", sentinel: ErrDocumentInvalid, contains: "root[]: missing node"},
		{name: "duplicate property", input: "root: {type: object, properties: {a: {type: string}, a: {type: number}}}\n", sentinel: ErrDocumentInvalid, contains: "defined twice"},
		{name: "broken definition", input: "root: {type: string}\ndefinitions:\n  Unused: {type: nope}\n", sentinel: ErrDocumentInvalid, contains: "definitions.Unused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v, got %v", tt.sentinel, err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderDocument), 0o600))

	g, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "object", g.TypeName(g.Root()))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, ErrDocumentRequired))

	_, err = Load(" ")
	assert.True(t, errors.Is(err, ErrDocumentRequired))
}
