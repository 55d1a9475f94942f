package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS Orders (
	id CHAR(36) NOT NULL PRIMARY KEY,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	payload JSON NOT NULL,
	createdAt DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	updatedAt DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	INDEX idx_status_created (status, createdAt)
)`

const createProductsTable = `
CREATE TABLE IF NOT EXISTS Products (
	id VARCHAR(64) NOT NULL PRIMARY KEY,
	slug VARCHAR(191) NOT NULL UNIQUE,
	name VARCHAR(255) NOT NULL,
	price BIGINT NOT NULL,
	description TEXT,
	soldOut TINYINT(1) NOT NULL DEFAULT 0,
	lengthCm DECIMAL(8,2) NULL,
	widthCm DECIMAL(8,2) NULL,
	heightCm DECIMAL(8,2) NULL,
	weightKg DECIMAL(8,3) NULL,
	createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// Tables lists the DDL statements in creation order.
var Tables = []struct {
	Name  string
	Query string
}{
	{"Orders", createOrdersTable},
	{"Products", createProductsTable},
}

// EnsureSchema creates the tables the service needs when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, tbl := range Tables {
		if _, err := db.ExecContext(ctx, tbl.Query); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.Name, err)
		}
	}
	return nil
}
