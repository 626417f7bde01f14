// Package cmdutil resolves the configuration and logger shared by the
// knowledge commands.
package cmdutil

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vdk888/knowledge/pkg/config"
	"github.com/vdk888/knowledge/pkg/logger"
)

// ResolveConfig layers the config file, environment and the registered
// flags of cmd named by flagKeys.
func ResolveConfig(cmd *cobra.Command, flagKeys ...string) (*config.Config, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}

	config.BindRegisteredFlags(v, cmd, config.Flags, flagKeys)

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, fmt.Errorf("resolving config: %w", err)
	}
	return cfg, nil
}

// NewLogger builds the command logger. Logs are pretty when stdout is a
// terminal unless JSON was asked for. When cfg.Log.File is set every record
// is also appended to that file as JSON; the returned func closes it.
func NewLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, func() error, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	debug = debug || cfg.Log.Debug

	console := logger.New(
		logger.WithDebug(debug),
		logger.WithJSON(cfg.Log.JSON),
		logger.WithPretty(!cfg.Log.JSON && term.IsTerminal(int(os.Stdout.Fd()))),
		logger.WithSource(cfg.Log.Source),
	)

	if cfg.Log.File == "" {
		return console, func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	file := logger.New(
		logger.WithWriter(f),
		logger.WithDebug(debug),
		logger.WithJSON(true),
		logger.WithSource(cfg.Log.Source),
	)

	return logger.Multi(console, file), f.Close, nil
}
