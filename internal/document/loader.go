package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"
	"gopkg.in/yaml.v3"

	"github.com/pulumi/schema-diff/pkg/schema"
)

func Load(path string) (*schema.Graph, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrDocumentRequired)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrDocumentRequired, err)
	}

	return Parse(data)
}

func Parse(data []byte) (*schema.Graph, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrDocumentRequired)
	}

	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing content", ErrDocumentInvalid)
	}

	if err := Validate(&doc); err != nil {
		return nil, err
	}

	g, err := Build(&doc)
	if err != nil {
		return nil, err
	}
	logging.V(5).Infof("loaded schema document: %d nodes, %d definitions", g.Len(), len(doc.Definitions))
	return g, nil
}

func Validate(doc *Document) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("%w: missing root", ErrDocumentInvalid)
	}

	if doc.Version != nil && *doc.Version != SupportedVersion {
		return fmt.Errorf("%w: expected %d got %d", ErrDocumentVersionUnsupported,
			SupportedVersion, *doc.Version)
	}
	return nil
}
