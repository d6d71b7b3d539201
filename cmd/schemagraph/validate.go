package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kaptinlin/jsonschema"
)

func newValidateCmd() *cobra.Command {
	var (
		structure    string
		assertFormat bool
	)
	cmd := &cobra.Command{
		Use:   "validate <schema-file> <instance-file>",
		Short: "Validate an instance document against a schema file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := logID()
			format, err := parseOutputFormat(structure)
			if err != nil {
				return err
			}
			e, err := buildEngine(assertFormat)
			if err != nil {
				return fmt.Errorf("building engine: %w", err)
			}
			key, err := compileSchemaFile(e, args[0], false)
			if err != nil {
				log.Printf("[%s] compile failed: %v", id, err)
				return err
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			instance, err := jsonschema.DecodeJSON(data, e.Numbers())
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[1], err)
			}
			out, err := e.Evaluate(key, instance, format)
			if err != nil {
				return fmt.Errorf("evaluating: %w", err)
			}
			// Output.Node is deliberately excluded from Output's own JSON
			// tags (it has no wire shape of its own in Flag/Basic); Detailed
			// and Verbose render it explicitly here instead.
			var toRender any = out
			if out.Node != nil {
				toRender = struct {
					Valid bool             `json:"valid"`
					Node  *jsonschema.Node `json:"node"`
				}{Valid: out.Valid, Node: out.Node}
			}
			rendered, err := json.MarshalIndent(toRender, "", "  ")
			if err != nil {
				return fmt.Errorf("rendering output: %w", err)
			}
			fmt.Println(string(rendered))
			if out.Valid {
				log.Printf("[%s] %s valid against %s", id, args[1], args[0])
			} else {
				log.Printf("[%s] %s invalid against %s", id, args[1], args[0])
				fmt.Fprintln(os.Stderr, color.RedString("FAIL"))
				os.Exit(1)
			}
			fmt.Fprintln(os.Stderr, color.GreenString("PASS"))
			return nil
		},
	}
	cmd.Flags().StringVar(&structure, "format", "flag", "output structure: flag, basic, detailed, or verbose")
	cmd.Flags().BoolVar(&assertFormat, "assert-format", false, "fail validation on format mismatches instead of only annotating")
	return cmd
}

func parseOutputFormat(s string) (jsonschema.OutputFormat, error) {
	switch s {
	case "flag":
		return jsonschema.Flag, nil
	case "basic":
		return jsonschema.Basic, nil
	case "detailed":
		return jsonschema.Detailed, nil
	case "verbose":
		return jsonschema.Verbose, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want flag, basic, detailed, or verbose)", s)
	}
}
