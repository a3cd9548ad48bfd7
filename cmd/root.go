package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardkeeper/internal/session"
)

// RootCmd represents the base command: an interactive session on one storage file
var RootCmd = &cobra.Command{
	Use:   "cardkeeper [storage_name]",
	Short: "Baseball card inventory manager",
	Long: `Cardkeeper is a text-menu inventory manager for baseball cards.
It keeps players and the cards they own in the file <storage_name>.txt,
which is created on first use and saved when you leave the menu.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}

		path, err := env.config.StoragePath(args[0])
		if err != nil {
			return err
		}

		s, err := session.Open(session.Options{
			StoragePath:     path,
			CreateIfMissing: true,
			In:              cmd.InOrStdin(),
			Out:             cmd.OutOrStdout(),
			ErrOut:          cmd.ErrOrStderr(),
			Logger:          env.logger,
			Color:           env.color,
		})
		if err != nil {
			return err
		}

		return s.Run()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	RootCmd.AddCommand(validateCmd)
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(exportCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
