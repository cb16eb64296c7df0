// Package schema defines the structural model compared by schema-diff.
//
// A schema is a Graph: an arena of nodes addressed by NodeID. Children are
// referenced by id rather than owned, so self-referential schemas are plain
// graphs and node identity is a cheap integer comparison.
package schema

import (
	"fmt"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/contract"
)

// NodeID addresses a node inside the Graph that created it.
type NodeID int

// Kind identifies a node variant.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindUnion
	KindEnum
	KindPrimitive
	KindOptional
	KindNullable
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindUnion:
		return "union"
	case KindEnum:
		return "enum"
	case KindPrimitive:
		return "primitive"
	case KindOptional:
		return "optional"
	case KindNullable:
		return "nullable"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// PrimitiveType is the scalar carried by a Primitive node.
type PrimitiveType int

const (
	String PrimitiveType = iota
	Number
	Boolean
	Date
)

func (p PrimitiveType) String() string {
	switch p {
	case String:
		return "string"
	case Number:
		return "number"
	case Boolean:
		return "boolean"
	case Date:
		return "date"
	}
	return fmt.Sprintf("PrimitiveType(%d)", int(p))
}

// Node is the closed set of schema shapes. Only types in this package
// implement it.
type Node interface {
	Kind() Kind
	isNode()
}

// Constraint is a validation rule attached to a primitive, e.g. minLength=3.
type Constraint struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Field is one named member of an Object.
type Field struct {
	Name string
	Node NodeID
}

type Object struct{ Fields []Field }

type Array struct{ Element NodeID }

type Union struct{ Variants []NodeID }

type Enum struct{ Values []string }

type Primitive struct {
	Type        PrimitiveType
	Constraints []Constraint
}

// Optional marks a value that may be absent.
type Optional struct{ Inner NodeID }

// Nullable marks a value that may be null.
type Nullable struct{ Inner NodeID }

func (Object) Kind() Kind    { return KindObject }
func (Array) Kind() Kind     { return KindArray }
func (Union) Kind() Kind     { return KindUnion }
func (Enum) Kind() Kind      { return KindEnum }
func (Primitive) Kind() Kind { return KindPrimitive }
func (Optional) Kind() Kind  { return KindOptional }
func (Nullable) Kind() Kind  { return KindNullable }

func (Object) isNode()    {}
func (Array) isNode()     {}
func (Union) isNode()     {}
func (Enum) isNode()      {}
func (Primitive) isNode() {}
func (Optional) isNode()  {}
func (Nullable) isNode()  {}

// Graph owns every node of one schema version.
type Graph struct {
	nodes   []Node
	root    NodeID
	hasRoot bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Add stores n and returns its id.
func (g *Graph) Add(n Node) NodeID {
	contract.Requiref(n != nil, "n", "must not be nil")
	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1)
}

// Reserve allocates an id whose node is supplied later with Define. This is
// how a node refers to itself or to an ancestor.
func (g *Graph) Reserve() NodeID {
	g.nodes = append(g.nodes, nil)
	return NodeID(len(g.nodes) - 1)
}

// Define fills an id obtained from Reserve.
func (g *Graph) Define(id NodeID, n Node) {
	contract.Requiref(g.inRange(id), "id", "%d is not part of this graph", id)
	contract.Requiref(g.nodes[id] == nil, "id", "%d is already defined", id)
	contract.Requiref(n != nil, "n", "must not be nil")
	g.nodes[id] = n
}

// Node returns the node stored at id.
func (g *Graph) Node(id NodeID) Node {
	contract.Assertf(g.inRange(id), "node %d is not part of this graph", id)
	n := g.nodes[id]
	contract.Assertf(n != nil, "node %d was reserved but never defined", id)
	return n
}

// SetRoot marks id as the entry point of the schema.
func (g *Graph) SetRoot(id NodeID) {
	contract.Requiref(g.inRange(id), "id", "%d is not part of this graph", id)
	g.root, g.hasRoot = id, true
}

// Root returns the entry point of the schema.
func (g *Graph) Root() NodeID {
	contract.Assertf(g.hasRoot, "graph has no root")
	return g.root
}

// HasRoot reports whether SetRoot was called.
func (g *Graph) HasRoot() bool { return g.hasRoot }

// Len is the number of allocated ids.
func (g *Graph) Len() int { return len(g.nodes) }

// TypeName is the label two nodes must share to be compared structurally.
// Primitives are labelled by their scalar type, everything else by its kind.
func (g *Graph) TypeName(id NodeID) string {
	if p, ok := g.Node(id).(Primitive); ok {
		return p.Type.String()
	}
	return g.Node(id).Kind().String()
}

func (g *Graph) inRange(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}
