package usecase

import (
	"context"
	"errors"
	"testing"

	"praktico/internal/domain"
	apperrors "praktico/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOrderRepository struct {
	ListFunc         func(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.OrderStatus) error
}

func (m *mockOrderRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error) {
	return m.ListFunc(ctx, filter)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return m.UpdateStatusFunc(ctx, id, status)
}

func TestListOrders_NormalizesFilter(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.ListFilter
		wantLimit int
	}{
		{name: "default limit", filter: domain.ListFilter{}, wantLimit: domain.DefaultListLimit},
		{name: "clamped limit", filter: domain.ListFilter{Limit: 500}, wantLimit: domain.MaxListLimit},
		{name: "explicit limit", filter: domain.ListFilter{Limit: 3, Status: "pending"}, wantLimit: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.ListFilter
			repo := &mockOrderRepository{ListFunc: func(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error) {
				got = filter
				return []domain.Order{{ID: "a"}}, nil
			}}

			orders, err := NewOrderManagementUseCase(repo, zap.NewNop()).ListOrders(context.Background(), tt.filter)

			require.NoError(t, err)
			assert.Len(t, orders, 1)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.filter.Status, got.Status)
		})
	}
}

func TestListOrders_RepositoryError(t *testing.T) {
	repo := &mockOrderRepository{ListFunc: func(context.Context, domain.ListFilter) ([]domain.Order, error) {
		return nil, errors.New("db down")
	}}

	_, err := NewOrderManagementUseCase(repo, zap.NewNop()).ListOrders(context.Background(), domain.ListFilter{})

	var internal *apperrors.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "No se pudieron leer pedidos.", internal.Message)
}

func TestUpdateStatus_Success(t *testing.T) {
	var gotID string
	var gotStatus domain.OrderStatus
	repo := &mockOrderRepository{UpdateStatusFunc: func(ctx context.Context, id string, status domain.OrderStatus) error {
		gotID, gotStatus = id, status
		return nil
	}}

	status, err := NewOrderManagementUseCase(repo, zap.NewNop()).UpdateStatus(context.Background(), "abc", "completed")

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, status)
	assert.Equal(t, "abc", gotID)
	assert.Equal(t, domain.OrderStatusCompleted, gotStatus)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &mockOrderRepository{UpdateStatusFunc: func(context.Context, string, domain.OrderStatus) error {
		t.Fatal("repository must not be called")
		return nil
	}}

	_, err := NewOrderManagementUseCase(repo, zap.NewNop()).UpdateStatus(context.Background(), "abc", "shipped")

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Estado inválido.", ve.Message)
}

func TestUpdateStatus_NotFoundPassesThrough(t *testing.T) {
	repo := &mockOrderRepository{UpdateStatusFunc: func(context.Context, string, domain.OrderStatus) error {
		return apperrors.NewNotFoundError("Pedido no encontrado.")
	}}

	_, err := NewOrderManagementUseCase(repo, zap.NewNop()).UpdateStatus(context.Background(), "missing", "pending")

	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "Pedido no encontrado.", nf.Message)
}

func TestUpdateStatus_RepositoryError(t *testing.T) {
	repo := &mockOrderRepository{UpdateStatusFunc: func(context.Context, string, domain.OrderStatus) error {
		return errors.New("deadlock")
	}}

	_, err := NewOrderManagementUseCase(repo, zap.NewNop()).UpdateStatus(context.Background(), "abc", "pending")

	var internal *apperrors.InternalError
	require.ErrorAs(t, err, &internal)
	assert.Equal(t, "No se pudo actualizar el pedido.", internal.Message)
}
