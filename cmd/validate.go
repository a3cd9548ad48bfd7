package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardkeeper/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [storage_name]",
	Short: "Validate a storage file",
	Long: `Validate checks that every line of a storage file can be loaded.
It reports malformed lines and duplicate keys as errors, and hand edits the
loader tolerates (padding, missing quotes, ordering) as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}

		storagePath, err := env.config.StoragePath(args[0])
		if err != nil {
			return err
		}

		// Check if path exists
		if _, err := os.Stat(storagePath); os.IsNotExist(err) {
			return fmt.Errorf("storage file not found: %s", storagePath)
		}

		v := validator.NewValidator(storagePath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if len(results.Errors) == 0 {
			fmt.Fprintf(out, "✅ Storage '%s' is valid.\n", storagePath)
		} else {
			fmt.Fprintf(out, "❌ Storage '%s' has %d validation errors:\n", storagePath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}
