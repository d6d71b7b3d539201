package main

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var validate bool
	cmd := &cobra.Command{
		Use:   "compile <schema-file>",
		Short: "Compile a schema file and report whether it is well-formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := logID()
			e, err := buildEngine(false)
			if err != nil {
				return fmt.Errorf("building engine: %w", err)
			}
			if _, err := compileSchemaFile(e, args[0], validate); err != nil {
				log.Printf("[%s] compile failed: %v", id, err)
				fmt.Println(color.RedString("FAIL") + " " + args[0])
				return err
			}
			log.Printf("[%s] compiled %s", id, args[0])
			fmt.Println(color.GreenString("OK") + " " + args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&validate, "validate", false, "also validate the schema document against its own dialect's metaschema")
	return cmd
}
