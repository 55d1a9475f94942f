package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	mysqlinfra "praktico/internal/infrastructure/mysql"
)

const defaultTestDSN = "root:@tcp(localhost:3306)/praktico_test?parseTime=true&loc=UTC&clientFoundRows=true"

// NewMockDB returns a sqlmock-backed database that is closed with the test
// and fails it when expectations are left unmet.
func NewMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		db.Close()
	})

	return db, mock
}

// SetupTestDB opens the live test database named by TEST_DB_DSN and skips
// the test when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the service tables in the test database.
func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, tbl := range mysqlinfra.Tables {
		if _, err := db.Exec(tbl.Query); err != nil {
			t.Fatalf("failed to create table %s: %v", tbl.Name, err)
		}
	}
}

// CleanupTestDB empties the service tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	for _, tbl := range mysqlinfra.Tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", tbl.Name)); err != nil {
			t.Logf("failed to clean table %s: %v", tbl.Name, err)
		}
	}

	db.Close()
}
