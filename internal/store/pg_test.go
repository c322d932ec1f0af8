package store

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/feral-file/darkpool-indexer/internal/store/storetest"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	db, release, err := storetest.Open(context.Background())
	if err != nil {
		fmt.Printf("Failed to prepare database: %v\n", err)
		release()
		os.Exit(1)
	}
	testDB = db

	code := m.Run()
	release()
	os.Exit(code)
}

// initPGTestDB binds the store to a transaction rolled back at test end
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

func cleanupPGTestDB(t *testing.T) {}

func TestPostgreSQLStore(t *testing.T) {
	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}
