package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"praktico/internal/domain"
	apperrors "praktico/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	payload, err := json.Marshal(order.Payload)
	if err != nil {
		return fmt.Errorf("encoding order payload: %w", err)
	}

	query := `
		INSERT INTO Orders (id, status, payload, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query,
		order.ID, string(order.Status), payload, order.CreatedAt, order.UpdatedAt,
	); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	return nil
}

// List returns the newest orders first. The filter is expected to be
// normalized by the caller.
func (r *MySQLOrderRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error) {
	query := `SELECT id, status, payload, createdAt, updatedAt FROM Orders`
	args := []any{}

	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY createdAt DESC LIMIT ?`
	args = append(args, filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `UPDATE Orders SET status = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order   domain.Order
		status  string
		payload []byte
	)

	if err := row.Scan(&order.ID, &status, &payload, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatus(status)
	if err := json.Unmarshal(payload, &order.Payload); err != nil {
		return nil, fmt.Errorf("decoding payload of order %s: %w", order.ID, err)
	}

	return &order, nil
}
