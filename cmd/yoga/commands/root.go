// Package commands holds the yoga CLI.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-yoga"
	"github.com/goliatone/go-yoga/config"
	"github.com/goliatone/go-yoga/logging"
	"github.com/goliatone/go-yoga/repository"
)

// Version is set at build time
var Version = "dev"

type rootOptions struct {
	envFile string
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "yoga",
		Short:         "Yoga studio session booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newSeedCommand(opts),
		newVersionCommand(),
	)

	return rootCmd
}

// runtime is what every command needs once config is loaded
type runtime struct {
	cfg     *config.Config
	logger  *logging.Logger
	manager *repository.Manager
}

func (o *rootOptions) bootstrap() (*runtime, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := repository.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	manager := repository.NewManager(db)
	if err := manager.Validate(); err != nil {
		db.Close()
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, manager: manager}, nil
}

func (r *runtime) close() {
	if err := r.manager.Close(); err != nil {
		r.logger.Warn("failed to close database", "error", err)
	}
}

func (r *runtime) migrate(ctx context.Context) error {
	applied, err := repository.Migrate(ctx, r.manager.DB())
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		r.logger.Info("database is up to date")
		return nil
	}
	r.logger.Info("migrations applied", "migrations", applied)
	return nil
}

func (r *runtime) hasher() yoga.PasswordHasher {
	return yoga.NewBcryptHasher(r.cfg.GetBcryptCost())
}
