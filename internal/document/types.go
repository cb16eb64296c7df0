package document

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pulumi/schema-diff/pkg/schema"
)

var (
	// ErrDocumentRequired indicates the schema document is missing or empty.
	ErrDocumentRequired = errors.New("schema document required")
	// ErrDocumentInvalid indicates the document shape or content is malformed.
	ErrDocumentInvalid = errors.New("schema document invalid")
	// ErrDocumentVersionUnsupported indicates a known-but-unsupported document version.
	ErrDocumentVersionUnsupported = errors.New("schema document version unsupported")
)

// SupportedVersion is the highest document version this loader understands.
const SupportedVersion = 1

// Document is the on-disk form of a schema. JSON documents are read as YAML.
type Document struct {
	Version     *int       `yaml:"version,omitempty"`
	Root        *NodeSpec  `yaml:"root"`
	Definitions NamedSpecs `yaml:"definitions,omitempty"`
}

// NodeSpec describes one node. Either Ref or Type is set. A bare string
// in place of a node is shorthand for {$ref: <string>}.
type NodeSpec struct {
	Type        string              `yaml:"type,omitempty"`
	Ref         string              `yaml:"$ref,omitempty"`
	Properties  NamedSpecs          `yaml:"properties,omitempty"`
	Items       *NodeSpec           `yaml:"items,omitempty"`
	Variants    []*NodeSpec         `yaml:"variants,omitempty"`
	Values      []string            `yaml:"values,omitempty"`
	Constraints []schema.Constraint `yaml:"constraints,omitempty"`
	Inner       *NodeSpec           `yaml:"inner,omitempty"`
}

func (n *NodeSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		n.Ref = value.Value
		return nil
	}
	type plain NodeSpec
	return value.Decode((*plain)(n))
}

// NamedSpec is one entry of an ordered mapping.
type NamedSpec struct {
	Name string
	Spec *NodeSpec
}

// NamedSpecs keeps mapping entries in document order.
type NamedSpecs []NamedSpec

func (o *NamedSpecs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", value.Line)
	}
	seen := make(map[string]struct{}, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if _, dup := seen[key.Value]; dup {
			return fmt.Errorf("line %d: %q is defined twice", key.Line, key.Value)
		}
		seen[key.Value] = struct{}{}

		var spec NodeSpec
		if err := value.Content[i+1].Decode(&spec); err != nil {
			return err
		}
		*o = append(*o, NamedSpec{Name: key.Value, Spec: &spec})
	}
	return nil
}
