// Package cli implements the docrst command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docrst/internal/config"
)

type ctxKey string

const envKey ctxKey = "env"

// env is what subcommands share: the loaded configuration and a logger.
type env struct {
	cfg config.Config
	log *slog.Logger
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command. Configuration is loaded before
// any subcommand runs.
func NewRootCmd() *cobra.Command {
	var (
		cfgPath string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "docrst",
		Short:         "Convert documents to reStructuredText",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Render.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, envKey, &env{cfg: cfg, log: log}))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (toml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newKindsCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func getEnv(cmd *cobra.Command) (*env, error) {
	e, ok := cmd.Context().Value(envKey).(*env)
	if !ok {
		return nil, fmt.Errorf("internal error: configuration not loaded")
	}
	return e, nil
}
