package yoga

import (
	"embed"
	"io/fs"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

const migrationsRoot = "data/sql/migrations"

// GetMigrationsFS returns the migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// GetDialectMigrationsFS returns the migrations of one dialect,
// either sqlite or postgres
func GetDialectMigrationsFS(dialect string) (fs.FS, error) {
	return fs.Sub(migrationsFS, migrationsRoot+"/"+dialect)
}
