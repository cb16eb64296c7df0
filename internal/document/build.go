package document

import (
	"errors"
	"fmt"

	"github.com/pulumi/schema-diff/pkg/schema"
)

// Build converts a document into a graph. Definitions may refer to
// themselves or to each other; every definition is built, referenced or not.
func Build(doc *Document) (*schema.Graph, error) {
	b := &builder{
		g:        schema.New(),
		defs:     make(map[string]*NodeSpec, len(doc.Definitions)),
		ids:      map[string]schema.NodeID{},
		aliasing: map[string]bool{},
	}
	for _, d := range doc.Definitions {
		b.defs[d.Name] = d.Spec
	}

	root, err := b.node(doc.Root, "root")
	if err != nil {
		return nil, err
	}
	b.g.SetRoot(root)

	for _, d := range doc.Definitions {
		if _, err := b.ref(d.Name, "definitions"); err != nil {
			return nil, err
		}
	}

	if err := b.g.Validate(); err != nil {
		return nil, errors.Join(ErrDocumentInvalid, err)
	}
	return b.g, nil
}

type builder struct {
	g    *schema.Graph
	defs map[string]*NodeSpec
	ids  map[string]schema.NodeID
	// Definitions that are plain aliases currently being resolved.
	aliasing map[string]bool
}

func (b *builder) invalid(path, format string, a ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrDocumentInvalid, path, fmt.Sprintf(format, a...))
}

func (b *builder) node(spec *NodeSpec, path string) (schema.NodeID, error) {
	if spec != nil && spec.Ref != "" {
		return b.ref(spec.Ref, path)
	}
	n, err := b.value(spec, path)
	if err != nil {
		return 0, err
	}
	return b.g.Add(n), nil
}

func (b *builder) ref(name, path string) (schema.NodeID, error) {
	if id, ok := b.ids[name]; ok {
		return id, nil
	}
	spec, ok := b.defs[name]
	if !ok {
		return 0, b.invalid(path, "unknown definition %q", name)
	}
	defPath := "definitions." + name

	if spec != nil && spec.Ref != "" {
		if b.aliasing[name] {
			return 0, b.invalid(defPath, "definition only refers to itself")
		}
		b.aliasing[name] = true
		id, err := b.ref(spec.Ref, defPath)
		if err != nil {
			return 0, err
		}
		b.ids[name] = id
		return id, nil
	}

	id := b.g.Reserve()
	b.ids[name] = id
	n, err := b.value(spec, defPath)
	if err != nil {
		return 0, err
	}
	b.g.Define(id, n)
	return id, nil
}

func (b *builder) value(spec *NodeSpec, path string) (schema.Node, error) {
	if spec == nil {
		return nil, b.invalid(path, "missing node")
	}

	switch spec.Type {
	case "object":
		fields := make([]schema.Field, 0, len(spec.Properties))
		for _, p := range spec.Properties {
			id, err := b.node(p.Spec, path+"."+p.Name)
			if err != nil {
				return nil, err
			}
			fields = append(fields, schema.FieldOf(p.Name, id))
		}
		return schema.Object{Fields: fields}, nil
	case "array":
		id, err := b.node(spec.Items, path+"[]")
		if err != nil {
			return nil, err
		}
		return schema.Array{Element: id}, nil
	case "union":
		if len(spec.Variants) == 0 {
			return nil, b.invalid(path, "union needs at least one variant")
		}
		variants := make([]schema.NodeID, len(spec.Variants))
		for i, v := range spec.Variants {
			id, err := b.node(v, fmt.Sprintf("%s|%d", path, i))
			if err != nil {
				return nil, err
			}
			variants[i] = id
		}
		return schema.Union{Variants: variants}, nil
	case "enum":
		return schema.Enum{Values: spec.Values}, nil
	case "optional", "nullable":
		id, err := b.node(spec.Inner, path)
		if err != nil {
			return nil, err
		}
		if spec.Type == "optional" {
			return schema.Optional{Inner: id}, nil
		}
		return schema.Nullable{Inner: id}, nil
	}

	if typ, ok := primitiveTypes[spec.Type]; ok {
		return schema.Primitive{Type: typ, Constraints: spec.Constraints}, nil
	}
	if spec.Type == "" {
		return nil, b.invalid(path, "node has neither type nor $ref")
	}
	return nil, b.invalid(path, "unknown type %q", spec.Type)
}

var primitiveTypes = map[string]schema.PrimitiveType{
	"string":  schema.String,
	"number":  schema.Number,
	"boolean": schema.Boolean,
	"date":    schema.Date,
}
