package main

import (
	"fmt"
	"os"

	"github.com/jonathan/interview-scorecard/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a round data file against its JSON schema",
	RunE:  runValidate,
}

var (
	validateRoundData string
	validateSchema    string
)

func init() {
	validateCmd.Flags().StringVarP(&validateRoundData, "round-data", "i", "", "Path to round data JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to a schema file (defaults to the built-in round data schema)")

	if err := validateCmd.MarkFlagRequired("round-data"); err != nil {
		panic(fmt.Sprintf("failed to mark round-data flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := validateFile(validateRoundData, validateSchema); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", validateRoundData)
	return nil
}

func validateFile(path, schemaPath string) error {
	if schemaPath != "" {
		return schemas.ValidateJSON(schemaPath, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read round data: %w", err)
	}
	return schemas.ValidateRoundData(data)
}
