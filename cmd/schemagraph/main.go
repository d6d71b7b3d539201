// Command schemagraph is a thin CLI wrapper around the jsonschema engine: it
// compiles a schema file and, optionally, validates an instance document
// against it, printing the requested output structure as JSON. It is a
// convenience tool for scripting and manual inspection, not part of the
// engine's public Go API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var requestID string

func main() {
	root := &cobra.Command{
		Use:   "schemagraph",
		Short: "Compile and validate JSON Schema documents",
	}
	root.PersistentFlags().StringVar(&requestID, "request-id", "", "correlation id attached to log output (random if omitted)")

	root.AddCommand(newCompileCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
