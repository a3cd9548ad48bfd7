package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardkeeper/internal/export"
	"github.com/arcanaland/cardkeeper/internal/session"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [storage_name] [destination]",
	Short: "Copy the inventory to another file",
	Long: `Export writes every player of a storage file to another destination.

The txt format is the storage format itself. The sqlite format writes the
players and cards tables of a SQLite database.

Examples:
  cardkeeper export collection backup.txt
  cardkeeper export --format sqlite collection collection.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}

		path, err := env.config.StoragePath(args[0])
		if err != nil {
			return err
		}

		s, err := session.Open(session.Options{
			StoragePath: path,
			Logger:      env.logger,
		})
		if err != nil {
			return err
		}

		if err := s.Export(cmd.Context(), args[1], format); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d players to %s\n", s.Store().Len(), args[1])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", string(export.FormatText), "Export format: txt or sqlite")
}
