package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/contentlint/internal/cli/shared"
	"github.com/ariel-frischer/contentlint/internal/content"
	"github.com/ariel-frischer/contentlint/internal/validation"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [type...]",
	Short: "Describe the record schema of each content type",
	Long: `Print the fields, types and constraints of the habit, research, goal and
locale schemas. With --json-schema, write each schema as a JSON Schema
(draft 2020-12) document into a directory for editors and other tools.`,
	Example: `  # Describe every content type
  contentlint schema

  # Describe habits only
  contentlint schema habit

  # Export JSON Schema files
  contentlint schema --json-schema ./schemas`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		types, err := parseTypes(args)
		if err != nil {
			shared.PrintError(cmd.ErrOrStderr(), err)
			return shared.NewExitError(shared.ExitInvalidArguments)
		}

		registry := validation.NewRegistry(time.Now())
		schemas := make([]*validation.Schema, 0, len(types))
		for _, t := range types {
			s, err := registry.Schema(t)
			if err != nil {
				return err
			}
			schemas = append(schemas, s)
		}

		dir, _ := cmd.Flags().GetString("json-schema")
		if dir == "" {
			for i, s := range schemas {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				printSchema(cmd.OutOrStdout(), s)
			}
			return nil
		}

		paths, err := exportSchemas(dir, schemas)
		if err != nil {
			shared.PrintError(cmd.ErrOrStderr(), err)
			return shared.NewExitError(shared.ExitInvalidArguments)
		}
		green := shared.NewColors().Green
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", green("✓"), p)
		}
		return nil
	},
}

func init() {
	schemaCmd.GroupID = shared.GroupInspection
	schemaCmd.Flags().String("json-schema", "", "Write <type>.schema.json files into this directory")
}

// parseTypes resolves type arguments; no arguments selects every type.
func parseTypes(args []string) ([]content.Type, error) {
	if len(args) == 0 {
		return content.Types, nil
	}
	types := make([]content.Type, 0, len(args))
	for _, a := range args {
		t, err := content.ParseType(a)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// exportSchemas writes one JSON Schema document per schema and returns the paths.
func exportSchemas(dir string, schemas []*validation.Schema) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating schema directory: %w", err)
	}
	paths := make([]string, 0, len(schemas))
	for _, s := range schemas {
		data, _, err := validation.ExportJSONSchema(s)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, string(s.Type)+".schema.json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// printSchema writes a schema as an indented field list.
func printSchema(out io.Writer, s *validation.Schema) {
	c := shared.NewColors()

	fmt.Fprintf(out, "%s %s\n", c.Cyan(string(s.Type)), c.Dim(s.Description))
	if !s.Type.IsRecordList() {
		fmt.Fprintf(out, "  %-22s %s\n", "keys", "pattern "+s.KeyPattern)
		if s.Value != nil {
			fmt.Fprintf(out, "  %-22s %s\n", "values", describeField(*s.Value))
		}
		return
	}
	printFields(out, s.Fields, "  ")
}

func printFields(out io.Writer, fields []validation.SchemaField, indent string) {
	for _, f := range fields {
		name := f.Name
		if f.Required {
			name += "*"
		}
		fmt.Fprintf(out, "%s%-*s %s\n", indent, 24-len(indent), name, describeField(f))
		if len(f.Children) > 0 {
			printFields(out, f.Children, indent+"  ")
		}
		if f.Items != nil && len(f.Items.Children) > 0 {
			printFields(out, f.Items.Children, indent+"  ")
		}
	}
}

// describeField renders a field's type and constraints on one line.
func describeField(f validation.SchemaField) string {
	parts := []string{string(f.Type)}
	if f.Items != nil {
		parts[0] = fmt.Sprintf("array of %s", f.Items.Type)
		if f.Items.Pattern != "" {
			parts = append(parts, "items match "+f.Items.Pattern)
		}
	}
	if f.MinLength > 0 || f.MaxLength > 0 {
		parts = append(parts, fmt.Sprintf("length %s", bounds(f.MinLength, f.MaxLength)))
	}
	if f.Minimum != nil || f.Maximum != nil {
		lo, hi := "", ""
		if f.Minimum != nil {
			lo = fmt.Sprint(*f.Minimum)
		}
		if f.Maximum != nil {
			hi = fmt.Sprint(*f.Maximum)
		}
		parts = append(parts, fmt.Sprintf("range %s..%s", lo, hi))
	}
	if f.MinItems > 0 || f.MaxItems > 0 {
		parts = append(parts, fmt.Sprintf("items %s", bounds(f.MinItems, f.MaxItems)))
	}
	if f.Pattern != "" {
		parts = append(parts, "pattern "+f.Pattern)
	}
	if len(f.Enum) > 0 {
		parts = append(parts, "one of "+strings.Join(f.Enum, ", "))
	}
	return strings.Join(parts, "; ")
}

func bounds(lo, hi int) string {
	switch {
	case hi == 0:
		return fmt.Sprintf(">= %d", lo)
	case lo == 0:
		return fmt.Sprintf("<= %d", hi)
	default:
		return fmt.Sprintf("%d..%d", lo, hi)
	}
}
