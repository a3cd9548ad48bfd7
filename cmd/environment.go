package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardkeeper/internal/config"
	"github.com/arcanaland/cardkeeper/internal/display"
)

// environment is what every command needs before touching a storage file
type environment struct {
	config *config.Config
	logger *slog.Logger
	color  bool
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}

	return &environment{
		config: cfg,
		logger: config.NewLogger(level, cfg.LogFormat, cmd.ErrOrStderr()),
		color:  cfg.Color && display.IsTerminal(cmd.OutOrStdout()),
	}, nil
}
