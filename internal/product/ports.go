package product

import (
	"context"

	"praktico/internal/domain"
)

type CartUseCase interface {
	ResolveParcel(ctx context.Context, lines []CartLine) (*CartParcel, error)
}

type Repository interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
}
