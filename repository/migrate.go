package repository

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"

	"github.com/goliatone/go-yoga"
)

// Migrate applies the embedded migrations for the dialect of db and
// returns the names of the migrations that ran
func Migrate(ctx context.Context, db *bun.DB) ([]string, error) {
	fsys, err := yoga.GetDialectMigrationsFS(DialectName(db))
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	migrations := migrate.NewMigrations()
	if err := migrations.Discover(fsys); err != nil {
		return nil, fmt.Errorf("discover migrations: %w", err)
	}

	migrator := migrate.NewMigrator(db, migrations)
	if err := migrator.Init(ctx); err != nil {
		return nil, fmt.Errorf("init migrations: %w", err)
	}

	if err := migrator.Lock(ctx); err != nil {
		return nil, fmt.Errorf("lock migrations: %w", err)
	}
	defer migrator.Unlock(ctx) //nolint:errcheck

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	names := []string{}
	if group == nil || group.IsZero() {
		return names, nil
	}
	for _, m := range group.Migrations {
		names = append(names, m.Name)
	}
	return names, nil
}
