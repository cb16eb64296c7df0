// Package pulumischema converts one type or resource of a Pulumi package
// schema into a structural schema graph.
package pulumischema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	pschema "github.com/pulumi/pulumi/pkg/v3/codegen/schema"
	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"

	"github.com/pulumi/schema-diff/pkg/schema"
)

var (
	// ErrPackageInvalid indicates a package schema that cannot be decoded or converted.
	ErrPackageInvalid = errors.New("package schema invalid")
	// ErrTokenNotFound indicates a token that names neither a type nor a resource.
	ErrTokenNotFound = errors.New("token not found")
)

// MapKeyField is the single field name used for map values.
const MapKeyField = "*"

const typesRefPrefix = "#/types/"

// Parse decodes a Pulumi package schema from JSON.
func Parse(data []byte) (*pschema.PackageSpec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrPackageInvalid)
	}

	var spec pschema.PackageSpec
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageInvalid, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content", ErrPackageInvalid)
	}
	return &spec, nil
}

// FromPackageSpec builds a graph rooted at the type or resource named by
// token. Resources are converted from their output properties.
func FromPackageSpec(spec *pschema.PackageSpec, token string) (*schema.Graph, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: missing package", ErrPackageInvalid)
	}

	im := &importer{
		spec:  spec,
		g:     schema.New(),
		types: map[string]schema.NodeID{},
	}

	var root schema.NodeID
	if _, ok := spec.Types[token]; ok {
		id, err := im.typeRef(token, token)
		if err != nil {
			return nil, err
		}
		root = id
	} else if res, ok := spec.Resources[token]; ok {
		node, err := im.object(res.Properties, res.Required, token)
		if err != nil {
			return nil, err
		}
		root = im.g.Add(node)
	} else {
		return nil, fmt.Errorf("%w: %q in package %q", ErrTokenNotFound, token, spec.Name)
	}
	im.g.SetRoot(root)

	if err := im.g.Validate(); err != nil {
		return nil, errors.Join(ErrPackageInvalid, err)
	}
	logging.V(5).Infof("imported %s from package %s: %d nodes, %d referenced types",
		token, spec.Name, im.g.Len(), len(im.types))
	return im.g, nil
}

type importer struct {
	spec *pschema.PackageSpec
	g    *schema.Graph

	// Types already converted or being converted, by token.
	types map[string]schema.NodeID
}

func (im *importer) typeRef(token, path string) (schema.NodeID, error) {
	if id, ok := im.types[token]; ok {
		return id, nil
	}
	t, ok := im.spec.Types[token]
	if !ok {
		return 0, fmt.Errorf("%w: %s: type %q", ErrTokenNotFound, path, token)
	}

	// Reserve first so types that refer back to themselves resolve here.
	id := im.g.Reserve()
	im.types[token] = id

	var node schema.Node
	var err error
	if len(t.Enum) > 0 {
		node = enum(t.Enum)
	} else {
		node, err = im.object(t.Properties, t.Required, path)
	}
	if err != nil {
		return 0, err
	}
	im.g.Define(id, node)
	return id, nil
}

func enum(values []pschema.EnumValueSpec) schema.Node {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v.Value))
	}
	return schema.Enum{Values: out}
}

func (im *importer) object(props map[string]pschema.PropertySpec, required []string, path string) (schema.Node, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	requiredSet := mapset.NewThreadUnsafeSet(required...)

	fields := make([]schema.Field, 0, len(names))
	for _, name := range names {
		prop := props[name]
		var constraints []schema.Constraint
		if prop.Const != nil {
			constraints = append(constraints, schema.Constraint{Kind: "const", Value: prop.Const})
		}
		id, err := im.typeSpec(&prop.TypeSpec, path+"."+name, constraints...)
		if err != nil {
			return nil, err
		}
		if !requiredSet.Contains(name) {
			id = im.g.Optional(id)
		}
		fields = append(fields, schema.FieldOf(name, id))
	}
	return schema.Object{Fields: fields}, nil
}

func (im *importer) typeSpec(ts *pschema.TypeSpec, path string, constraints ...schema.Constraint) (schema.NodeID, error) {
	if ts.Ref != "" {
		if !strings.HasPrefix(ts.Ref, typesRefPrefix) {
			// Any, Archive, Asset and external references are opaque.
			return im.g.Primitive(schema.String, constraints...), nil
		}
		token := strings.TrimPrefix(ts.Ref, typesRefPrefix)
		if _, ok := im.spec.Types[token]; !ok {
			if unescaped, err := url.PathUnescape(token); err == nil {
				token = unescaped
			}
		}
		return im.typeRef(token, path)
	}

	if len(ts.OneOf) > 0 {
		variants := make([]schema.NodeID, 0, len(ts.OneOf))
		for i := range ts.OneOf {
			id, err := im.typeSpec(&ts.OneOf[i], fmt.Sprintf("%s|%d", path, i))
			if err != nil {
				return 0, err
			}
			variants = append(variants, id)
		}
		return im.g.Union(variants...), nil
	}

	switch ts.Type {
	case "string":
		return im.g.Primitive(schema.String, constraints...), nil
	case "integer", "number":
		return im.g.Primitive(schema.Number, constraints...), nil
	case "boolean":
		return im.g.Primitive(schema.Boolean, constraints...), nil
	case "array":
		if ts.Items == nil {
			return 0, fmt.Errorf("%w: %s: array without items", ErrPackageInvalid, path)
		}
		element, err := im.typeSpec(ts.Items, path+"[]")
		if err != nil {
			return 0, err
		}
		return im.g.Array(element), nil
	case "object":
		value := im.g.Primitive(schema.String)
		if ts.AdditionalProperties != nil {
			var err error
			value, err = im.typeSpec(ts.AdditionalProperties, path+"."+MapKeyField)
			if err != nil {
				return 0, err
			}
		}
		return im.g.Object(schema.FieldOf(MapKeyField, value)), nil
	default:
		return 0, fmt.Errorf("%w: %s: unsupported type %q", ErrPackageInvalid, path, ts.Type)
	}
}
