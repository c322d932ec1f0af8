// Package migrations embeds the postgres schema and applies it with sql-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/logger"
)

//go:embed *.sql
var files embed.FS

const migrationTable = "schema_migrations"

// Source returns the embedded migration set
func Source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       ".",
	}
}

// Up applies every pending migration
func Up(db *sql.DB) error {
	return exec(db, migrate.Up, 0)
}

// Down reverts at most max migrations. Pass 0 to revert all of them.
func Down(db *sql.DB, max int) error {
	return exec(db, migrate.Down, max)
}

func exec(db *sql.DB, dir migrate.MigrationDirection, max int) error {
	ms := migrate.MigrationSet{TableName: migrationTable}

	n, err := ms.ExecMax(db, "postgres", Source(), dir, max)
	if err != nil {
		return fmt.Errorf("failed to execute migrations: %w", err)
	}

	logger.Info("Applied database migrations", zap.Int("count", n), zap.Bool("up", dir == migrate.Up))
	return nil
}
