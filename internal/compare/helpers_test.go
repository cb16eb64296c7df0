package compare

import "github.com/pulumi/schema-diff/pkg/schema"

// build returns a graph rooted at whatever fn returns.
func build(fn func(g *schema.Graph) schema.NodeID) *schema.Graph {
	g := schema.New()
	g.SetRoot(fn(g))
	return g
}

func str(g *schema.Graph, constraints ...schema.Constraint) schema.NodeID {
	return g.Primitive(schema.String, constraints...)
}

func kinds(changes []Change) []ChangeKind {
	out := make([]ChangeKind, len(changes))
	for i, c := range changes {
		out[i] = c.Kind
	}
	return out
}
