package schema

// FieldOf pairs a field name with its node.
func FieldOf(name string, node NodeID) Field {
	return Field{Name: name, Node: node}
}

func (g *Graph) Object(fields ...Field) NodeID {
	return g.Add(Object{Fields: fields})
}

func (g *Graph) Array(element NodeID) NodeID {
	return g.Add(Array{Element: element})
}

func (g *Graph) Union(variants ...NodeID) NodeID {
	return g.Add(Union{Variants: variants})
}

func (g *Graph) Enum(values ...string) NodeID {
	return g.Add(Enum{Values: values})
}

func (g *Graph) Primitive(typ PrimitiveType, constraints ...Constraint) NodeID {
	return g.Add(Primitive{Type: typ, Constraints: constraints})
}

func (g *Graph) Optional(inner NodeID) NodeID {
	return g.Add(Optional{Inner: inner})
}

func (g *Graph) Nullable(inner NodeID) NodeID {
	return g.Add(Nullable{Inner: inner})
}
