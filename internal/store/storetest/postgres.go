// Package storetest provides a migrated postgres database for package tests.
package storetest

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/feral-file/darkpool-indexer/db/migrations"
)

const image = "postgres:18-alpine"

// Open connects to the database named by TEST_DB_HOST and friends, or starts a
// postgres container when TEST_DB_HOST is unset, and applies the migrations.
// The returned func releases the container and is safe to call when none was started.
func Open(ctx context.Context) (*gorm.DB, func(), error) {
	var (
		dsn       string
		container *postgres.PostgresContainer
		err       error
	)
	release := func() {
		if container == nil {
			return
		}
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}

	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			envOr("TEST_DB_PORT", "5432"),
			envOr("TEST_DB_USER", "postgres"),
			envOr("TEST_DB_PASSWORD", "postgres"),
			envOr("TEST_DB_NAME", "test_db"))
	} else {
		container, err = postgres.Run(ctx, image,
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			return nil, release, fmt.Errorf("failed to start postgres container: %w", err)
		}

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			return nil, release, fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, release, fmt.Errorf("failed to connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, release, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := migrations.Up(sqlDB); err != nil {
		return nil, release, fmt.Errorf("failed to migrate: %w", err)
	}

	return db, release, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
