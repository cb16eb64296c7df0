package cmd

import (
	"context"
	"fmt"

	"github.com/pulumi/pulumi/sdk/v3/go/common/util/logging"

	"github.com/pulumi/schema-diff/internal/document"
	"github.com/pulumi/schema-diff/internal/pulumischema"
	"github.com/pulumi/schema-diff/internal/source"
	"github.com/pulumi/schema-diff/pkg/schema"
)

const (
	inputNative = "native"
	inputPulumi = "pulumi"
)

// schemaInput says how fetched bytes become a graph.
type schemaInput struct {
	kind  string
	token string
}

func (in schemaInput) validate() error {
	switch in.kind {
	case inputNative:
		return nil
	case inputPulumi:
		if in.token == "" {
			return fmt.Errorf("--token is required with --input=%s", inputPulumi)
		}
		return nil
	default:
		return fmt.Errorf("unknown input %q, expected %q or %q", in.kind, inputNative, inputPulumi)
	}
}

func (in schemaInput) load(ctx context.Context, location string) (*schema.Graph, error) {
	data, err := source.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	logging.V(3).Infof("fetched %d bytes from %s", len(data), location)

	if in.kind == inputPulumi {
		spec, err := pulumischema.Parse(data)
		if err != nil {
			return nil, err
		}
		return pulumischema.FromPackageSpec(spec, in.token)
	}
	return document.Parse(data)
}
