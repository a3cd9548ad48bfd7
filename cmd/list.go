package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardkeeper/internal/display"
	"github.com/arcanaland/cardkeeper/internal/session"
)

// listCmd represents the ls command
var listCmd = &cobra.Command{
	Use:   "ls [storage_name]",
	Short: "List every player and card in a storage file",
	Args:  cobra.ExactArgs(1),
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
			StoragePath: path,
			Logger:      env.logger,
		})
		if err != nil {
			return err
		}

		players := s.Store().Players()
		if len(players) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No players found in %s.\n", path)
			return nil
		}

		printer := display.NewPrinter(cmd.OutOrStdout(), env.color)
		for _, p := range players {
			printer.PlayerEntry(p)
		}
		return nil
	},
}
