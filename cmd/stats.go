package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pulumi/schema-diff/internal/stats"
)

func statsCmd() *cobra.Command {
	var location, format string
	var input schemaInput

	command := &cobra.Command{
		Use:   "stats",
		Short: "Get the stats of a schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd.Context(), cmd.OutOrStdout(), location, input, format)
		},
	}

	command.Flags().StringVarP(&location, "schema", "s", "", "the schema to analyze")
	_ = command.MarkFlagRequired("schema")
	command.Flags().StringVar(&input.kind, "input", inputNative,
		`how to read the schema: "native" schema document or "pulumi" package schema`)
	command.Flags().StringVar(&input.token, "token", "",
		"the type or resource token to analyze when --input=pulumi")
	command.Flags().StringVarP(&format, "format", "f", formatText, `output format: "text" or "json"`)

	return command
}

func runStats(ctx context.Context, out io.Writer, location string, input schemaInput, format string) error {
	if err := input.validate(); err != nil {
		return err
	}
	if format != formatText && format != formatJSON {
		return fmt.Errorf("unknown format %q", format)
	}

	g, err := input.load(ctx, location)
	if err != nil {
		return err
	}
	s := stats.Of(g)

	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	types := make([]string, 0, len(s.ByType))
	for typ := range s.ByType {
		types = append(types, typ)
	}
	sort.Strings(types)

	fmt.Fprintf(out, "Total nodes: %d\n", s.Nodes)
	for _, typ := range types {
		fmt.Fprintf(out, "  %s: %d\n", typ, s.ByType[typ])
	}
	fmt.Fprintf(out, "Total fields: %d\n", s.Fields)
	fmt.Fprintf(out, "Total enum values: %d\n", s.EnumValues)
	fmt.Fprintf(out, "Total constraints: %d\n", s.Constraints)
	fmt.Fprintf(out, "Max depth: %d\n", s.MaxDepth)
	fmt.Fprintf(out, "Cyclic: %t\n", s.Cyclic)
	return nil
}
