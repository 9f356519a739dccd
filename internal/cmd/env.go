package cmd

import (
	"github.com/dendrascience/edge-aggregate/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// env is what every subcommand needs from the root: the config file values
// and a logger.
type env struct {
	cfg config.Config
	log *zap.Logger
}

// setup loads the config file named by --config, or $HOME/.edgeagg when the
// flag is unset, and builds the logger. Only an explicitly named config file
// has to exist.
func setup(cmd *cobra.Command) (*env, error) {
	path, explicit := "", false
	if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
		path, explicit = f.Value.String(), true
	}
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, !explicit)
	if err != nil {
		return nil, err
	}

	verbose := false
	if f := cmd.Flags().Lookup("verbose"); f != nil {
		verbose = f.Value.String() == "true"
	}
	log, err := newLogger(verbose)
	if err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		log.Debug("loaded config", zap.String("path", cfg.Path))
	}
	return &env{cfg: cfg, log: log}, nil
}

// newLogger builds a console logger on stderr without stack traces or
// callers.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

// stringDefault returns the config value for a string flag the user did not
// set on the command line.
func stringDefault(cmd *cobra.Command, flag string, current, fromConfig string) string {
	if cmd.Flags().Changed(flag) || fromConfig == "" {
		return current
	}
	return fromConfig
}
