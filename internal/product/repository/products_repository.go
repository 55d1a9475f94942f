package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"praktico/internal/domain"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

// FindByIDs returns the catalog rows for ids in no particular order. Unknown
// ids are simply absent from the result.
func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, slug, name, price, description, soldOut,
		       lengthCm, widthCm, heightCm, weightKg,
		       createdAt, updatedAt
		FROM Products
		WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var (
			p                             domain.Product
			description                   sql.NullString
			length, width, height, weight sql.NullFloat64
		)
		err := rows.Scan(
			&p.ID, &p.Slug, &p.Name, &p.Price, &description, &p.SoldOut,
			&length, &width, &height, &weight,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		p.Description = description.String
		if length.Valid || width.Valid || height.Valid || weight.Valid {
			p.Shipping = &domain.ProductShipping{
				LengthCm: length.Float64,
				WidthCm:  width.Float64,
				HeightCm: height.Float64,
				WeightKg: weight.Float64,
			}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
