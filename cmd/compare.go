package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pulumi/schema-diff/pkg/compare"
)

// ErrIncompatible is returned in CI mode when the new schema breaks the old one.
var ErrIncompatible = errors.New("schemas are incompatible")

const (
	formatText      = "text"
	formatJSON      = "json"
	formatSummary   = "summary"
	formatMigration = "migration"
)

type compareArgs struct {
	oldLocation string
	newLocation string
	input       schemaInput

	format      string
	summaryOnly bool
	maxChanges  int

	noBreaking  bool
	noMigration bool
	strict      bool
	ci          bool
}

func compareCmd() *cobra.Command {
	var args compareArgs

	command := &cobra.Command{
		Use:   "compare",
		Short: "Compare two versions of a schema",
		Long: "Compare two versions of a schema and report every structural change,\n" +
			"which of them break existing data or consumers, and how to migrate.\n\n" +
			"Schemas are read from a path, a file: URL, an http(s) URL,\n" +
			"github://<host>/<owner>/<repo>/<path>?ref=<ref> or\n" +
			"gitlab://<host>/<owner>/<project>/<path>?ref=<ref>.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	command.Flags().StringVarP(&args.oldLocation, "old", "o", "", "the old schema")
	_ = command.MarkFlagRequired("old")
	command.Flags().StringVarP(&args.newLocation, "new", "n", "", "the new schema")
	_ = command.MarkFlagRequired("new")

	command.Flags().StringVar(&args.input.kind, "input", inputNative,
		`how to read both schemas: "native" schema documents or "pulumi" package schemas`)
	command.Flags().StringVar(&args.input.token, "token", "",
		"the type or resource token to compare when --input=pulumi")

	command.Flags().StringVarP(&args.format, "format", "f", formatText,
		`output format: "text", "json", "summary" or "migration"`)
	command.Flags().BoolVar(&args.summaryOnly, "summary-only", false,
		"only emit the summary with --format=json")
	command.Flags().IntVarP(&args.maxChanges, "max-changes", "m", 500,
		"the maximum number of changes to display with --format=text, -1 for all")

	command.Flags().BoolVar(&args.noBreaking, "no-breaking", false, "skip breaking change detection")
	command.Flags().BoolVar(&args.noMigration, "no-migration", false, "skip migration guide generation")
	command.Flags().BoolVar(&args.strict, "strict", false, "enable strict mode")
	command.Flags().BoolVar(&args.ci, "ci", false, "exit non-zero when the schemas are incompatible")

	return command
}

func (args compareArgs) options() compare.Options {
	opts := compare.DefaultOptions()
	opts.DetectBreaking = !args.noBreaking
	opts.GenerateMigration = !args.noMigration
	opts.StrictMode = args.strict
	return opts
}

func (args compareArgs) validate() error {
	if err := args.input.validate(); err != nil {
		return err
	}
	switch args.format {
	case formatText, formatJSON, formatSummary:
	case formatMigration:
		if args.noMigration {
			return fmt.Errorf("--format=%s cannot be combined with --no-migration", formatMigration)
		}
	default:
		return fmt.Errorf("unknown format %q", args.format)
	}
	if args.summaryOnly && args.format != formatJSON {
		return fmt.Errorf("--summary-only requires --format=%s", formatJSON)
	}
	return nil
}

func runCompare(ctx context.Context, out io.Writer, args compareArgs) error {
	if err := args.validate(); err != nil {
		return err
	}

	oldSchema, err := args.input.load(ctx, args.oldLocation)
	if err != nil {
		return fmt.Errorf("loading old schema: %w", err)
	}
	newSchema, err := args.input.load(ctx, args.newLocation)
	if err != nil {
		return fmt.Errorf("loading new schema: %w", err)
	}

	result := compare.Diff(oldSchema, newSchema, args.options())

	switch args.format {
	case formatText:
		compare.RenderText(out, result, args.maxChanges)
	case formatJSON:
		if err = compare.RenderJSON(out, result, args.summaryOnly); err == nil {
			_, err = fmt.Fprintln(out)
		}
	case formatSummary:
		err = compare.RenderSummary(out, result)
	case formatMigration:
		_, err = io.WriteString(out, result.MigrationGuide)
	}
	if err != nil {
		return err
	}

	if args.ci && !result.Summary.Compatible {
		return fmt.Errorf("%w: %d breaking changes", ErrIncompatible, result.Summary.Breaking)
	}
	return nil
}
