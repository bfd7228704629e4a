package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/outreach-composer/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <request.json>",
	Short: "Validate a request file against the JSON Schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	schemaPath := schemas.ResolveSchemaPath(schemas.GenerateRequestSchema)
	if schemaPath == "" {
		return fmt.Errorf("schema file not found: %s", schemas.GenerateRequestSchema)
	}

	if err := schemas.ValidateFile(schemaPath, args[0]); err != nil {
		return err
	}

	if _, err := loadGenerateRequest(args[0], "", "", nil); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%s is valid\n", args[0])
	return nil
}
