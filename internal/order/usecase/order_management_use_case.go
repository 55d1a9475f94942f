package usecase

import (
	"context"
	"strings"

	"praktico/internal/domain"
	apperrors "praktico/internal/errors"

	"go.uber.org/zap"
)

type OrderRepository interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

// OrderManagementUseCase serves the operator-facing order endpoints.
type OrderManagementUseCase struct {
	orderRepo OrderRepository
	logger    *zap.Logger
}

func NewOrderManagementUseCase(orderRepo OrderRepository, logger *zap.Logger) *OrderManagementUseCase {
	return &OrderManagementUseCase{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

func (uc *OrderManagementUseCase) ListOrders(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error) {
	filter = filter.Normalize()

	orders, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError("No se pudieron leer pedidos.", err)
	}

	uc.logger.Debug("orders listed",
		zap.Int("limit", filter.Limit),
		zap.String("status", filter.Status),
		zap.Int("count", len(orders)),
	)
	return orders, nil
}

func (uc *OrderManagementUseCase) UpdateStatus(ctx context.Context, id string, rawStatus string) (domain.OrderStatus, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.NewValidationError("Falta id del pedido.", apperrors.ValidationDetail{
			Field:   "id",
			Message: "Falta id del pedido.",
		})
	}

	status, ok := domain.ParseOrderStatus(rawStatus)
	if !ok {
		return "", apperrors.NewValidationError("Estado inválido.", apperrors.ValidationDetail{
			Field:   "status",
			Message: "Debe ser pending, processing, completed o cancelled.",
		})
	}

	if err := uc.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return "", err
		}
		return "", apperrors.NewInternalError("No se pudo actualizar el pedido.", err)
	}

	uc.logger.Info("order status updated", zap.String("orderId", id), zap.String("status", string(status)))
	return status, nil
}
