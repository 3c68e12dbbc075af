package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bookcook/api/internal/app"
	"github.com/bookcook/api/internal/config"
	"github.com/bookcook/api/internal/logger"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cookbook and in-n-out-books servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, root.configPath)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.LogLevel, cfg.IsDevelopment()); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				log.Error().Err(err).Msg("Failed to start")
				return err
			}
			return a.Run(ctx)
		},
	}

	cmd.Flags().Int("cookbook-port", 0, "Port for the cookbook service")
	cmd.Flags().Int("books-port", 0, "Port for the in-n-out-books service")
	cmd.Flags().String("db", "", "Path to a sqlite database (empty keeps data in memory)")
	cmd.Flags().String("env", "", "Application environment, e.g. development or production")
	return cmd
}

// loadConfig layers explicitly set flags over the file and environment configuration.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("cookbook-port") {
		cfg.CookbookPort, _ = flags.GetInt("cookbook-port")
	}
	if flags.Changed("books-port") {
		cfg.BooksPort, _ = flags.GetInt("books-port")
	}
	if flags.Changed("db") {
		cfg.DatabasePath, _ = flags.GetString("db")
	}
	if flags.Changed("env") {
		cfg.AppEnv, _ = flags.GetString("env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// contextOrBackground guards against commands executed without a context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
