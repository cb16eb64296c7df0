// Package stats summarizes the shape of a schema graph.
package stats

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/pulumi/schema-diff/pkg/schema"
)

// Stats describes the part of a graph reachable from its root.
type Stats struct {
	Nodes       int            `json:"nodes"`
	ByType      map[string]int `json:"byType"`
	Fields      int            `json:"fields"`
	EnumValues  int            `json:"enumValues"`
	Constraints int            `json:"constraints"`
	// MaxDepth is the longest chain of nested nodes, not following cycles.
	MaxDepth int  `json:"maxDepth"`
	Cyclic   bool `json:"cyclic"`
}

type graphVisitor interface {
	// visitNode is called once per reachable node.
	visitNode(id schema.NodeID, node schema.Node, typeName string)
	// visitCycle is called when a node refers back to one of its ancestors.
	visitCycle(id schema.NodeID)
}

// Of collects Stats for g, which must be well formed.
func Of(g *schema.Graph) Stats {
	b := &statsBuilder{stats: Stats{ByType: map[string]int{}}}
	w := &walker{
		g:       g,
		visitor: b,
		active:  mapset.NewThreadUnsafeSet[schema.NodeID](),
		depth:   map[schema.NodeID]int{},
	}
	b.stats.MaxDepth = w.walk(g.Root())
	return b.stats
}

type walker struct {
	g       *schema.Graph
	visitor graphVisitor

	active mapset.Set[schema.NodeID]
	depth  map[schema.NodeID]int
}

// walk returns the depth of the subtree rooted at id.
func (w *walker) walk(id schema.NodeID) int {
	if w.active.Contains(id) {
		w.visitor.visitCycle(id)
		return 0
	}
	if d, ok := w.depth[id]; ok {
		return d
	}

	node := w.g.Node(id)
	w.visitor.visitNode(id, node, w.g.TypeName(id))

	w.active.Add(id)
	deepest := 0
	for _, child := range children(node) {
		if d := w.walk(child); d > deepest {
			deepest = d
		}
	}
	w.active.Remove(id)

	w.depth[id] = deepest + 1
	return deepest + 1
}

func children(node schema.Node) []schema.NodeID {
	switch n := node.(type) {
	case schema.Object:
		ids := make([]schema.NodeID, 0, len(n.Fields))
		for _, f := range n.Fields {
			ids = append(ids, f.Node)
		}
		return ids
	case schema.Array:
		return []schema.NodeID{n.Element}
	case schema.Union:
		return n.Variants
	case schema.Optional:
		return []schema.NodeID{n.Inner}
	case schema.Nullable:
		return []schema.NodeID{n.Inner}
	default:
		return nil
	}
}

type statsBuilder struct {
	stats Stats
}

func (b *statsBuilder) visitNode(_ schema.NodeID, node schema.Node, typeName string) {
	b.stats.Nodes++
	b.stats.ByType[typeName]++
	switch n := node.(type) {
	case schema.Object:
		b.stats.Fields += len(n.Fields)
	case schema.Enum:
		b.stats.EnumValues += len(n.Values)
	case schema.Primitive:
		b.stats.Constraints += len(n.Constraints)
	}
}

func (b *statsBuilder) visitCycle(schema.NodeID) {
	b.stats.Cyclic = true
}
