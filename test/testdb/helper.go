package testdb

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/quietfeed/quietfeed/internal/adapters/database"
	"github.com/quietfeed/quietfeed/pkg/logger"
)

// Setup connects to the test database, applies migrations and wipes the
// headline tables. Tests are skipped when TEST_DATABASE_URL is not set.
func Setup(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	if logger.Log == nil {
		if err := logger.Init("error", ""); err != nil {
			t.Fatalf("failed to init logger: %v", err)
		}
	}

	conn, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(conn.DB, migrationsPath(t)); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Start each test from a clean slate; seeded themes are restored by
	// the seed migration being idempotent
	if _, err := conn.Exec(`TRUNCATE headlines RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("failed to truncate headlines: %v", err)
	}

	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	return conn
}

// migrationsPath resolves the migrations directory relative to this file
// so tests work from any package directory
func migrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to resolve caller path")
	}

	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}
