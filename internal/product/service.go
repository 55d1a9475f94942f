package product

import (
	"context"
	"fmt"

	"praktico/internal/domain"
	"praktico/internal/shipping/parcel"

	"go.uber.org/zap"
)

type cartService struct {
	repo   Repository
	logger *zap.Logger
}

func NewCartService(repo Repository, logger *zap.Logger) CartUseCase {
	return &cartService{repo: repo, logger: logger}
}

func (s *cartService) ResolveParcel(ctx context.Context, lines []CartLine) (*CartParcel, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("loading cart products: %w", err)
	}

	byID := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	var cart domain.Cart
	var missing []string
	reported := make(map[string]struct{})
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok || p.SoldOut {
			if _, dup := reported[line.ProductID]; !dup {
				reported[line.ProductID] = struct{}{}
				missing = append(missing, line.ProductID)
			}
			continue
		}
		cart.Add(p, line.Quantity)
	}

	if len(missing) > 0 {
		s.logger.Debug("cart references unavailable products", zap.Strings("productIds", missing))
	}

	return &CartParcel{
		Parcel:        parcel.Aggregate(cart.Items),
		HasAny:        len(cart.Items) > 0,
		DeclaredValue: cart.Total(),
		Missing:       missing,
	}, nil
}
