package schema

import (
	"errors"
	"fmt"
)

// ErrMalformed indicates a graph that violates the node contract.
var ErrMalformed = errors.New("malformed schema")

// Validate checks that every reachable and unreachable node is well formed.
// All problems are reported, joined into one error.
func (g *Graph) Validate() error {
	var errs []error
	fail := func(format string, a ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, a...)))
	}
	child := func(owner int, id NodeID) {
		if !g.inRange(id) {
			fail("node %d references unknown node %d", owner, id)
		}
	}

	if !g.hasRoot {
		fail("no root node")
	}
	for i, n := range g.nodes {
		switch n := n.(type) {
		case nil:
			fail("node %d was reserved but never defined", i)
		case Object:
			seen := make(map[string]struct{}, len(n.Fields))
			for _, f := range n.Fields {
				if f.Name == "" {
					fail("node %d has a field without a name", i)
				}
				if _, dup := seen[f.Name]; dup {
					fail("node %d declares field %q twice", i, f.Name)
				}
				seen[f.Name] = struct{}{}
				child(i, f.Node)
			}
		case Array:
			child(i, n.Element)
		case Union:
			if len(n.Variants) == 0 {
				fail("union node %d has no variants", i)
			}
			for _, v := range n.Variants {
				child(i, v)
			}
		case Enum:
			seen := make(map[string]struct{}, len(n.Values))
			for _, v := range n.Values {
				if _, dup := seen[v]; dup {
					fail("enum node %d lists %q twice", i, v)
				}
				seen[v] = struct{}{}
			}
		case Primitive:
			if n.Type < String || n.Type > Date {
				fail("primitive node %d has unknown type %d", i, int(n.Type))
			}
		case Optional:
			child(i, n.Inner)
		case Nullable:
			child(i, n.Inner)
		}
	}
	return errors.Join(errs...)
}
