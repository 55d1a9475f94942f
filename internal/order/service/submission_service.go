package service

import (
	"context"
	"time"

	"praktico/internal/domain"
	apperrors "praktico/internal/errors"
	"praktico/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const notifyWarning = "Pedido guardado, pero no se pudo enviar la notificación."

type OrderValidator interface {
	Validate(payload domain.OrderPayload) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
}

type Notifier interface {
	Notify(ctx context.Context, order domain.Order) error
}

type OrderRecorder interface {
	RecordOrder(outcome string)
}

type SubmissionResult struct {
	ID       string
	Notified bool
	Warning  string
}

// SubmissionService accepts checkout orders. An order counts as created once
// it is stored; the operator notification is best effort.
type SubmissionService struct {
	validator OrderValidator
	orderRepo OrderRepository
	notifier  Notifier
	recorder  OrderRecorder
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewSubmissionService(
	validator OrderValidator,
	orderRepo OrderRepository,
	notifier Notifier,
	recorder OrderRecorder,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		validator: validator,
		orderRepo: orderRepo,
		notifier:  notifier,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (s *SubmissionService) Submit(ctx context.Context, payload domain.OrderPayload) (*SubmissionResult, error) {
	if err := s.validator.Validate(payload); err != nil {
		s.record(metrics.OrderOutcomeRejected)
		s.logger.Info("order rejected", zap.String("reason", err.Error()))
		return nil, err
	}

	now := s.now().UTC()
	if payload.CreatedAt.IsZero() {
		payload.CreatedAt = now
	}

	order := domain.Order{
		ID:        s.newID(),
		Status:    domain.OrderStatusPending,
		Payload:   payload,
		CreatedAt: payload.CreatedAt,
		UpdatedAt: now,
	}

	if err := s.orderRepo.Create(ctx, &order); err != nil {
		s.record(metrics.OrderOutcomeStoreFailed)
		s.logger.Error("failed to store order", zap.Error(err))
		return nil, apperrors.NewInternalError("No se pudo guardar el pedido.", err)
	}

	logger := s.logger.With(zap.String("orderId", order.ID))

	if err := s.notifier.Notify(ctx, order); err != nil {
		s.record(metrics.OrderOutcomeNotifyFailed)
		logger.Error("order stored but notification failed", zap.Error(err))
		return &SubmissionResult{ID: order.ID, Notified: false, Warning: notifyWarning}, nil
	}

	s.record(metrics.OrderOutcomeCreated)
	logger.Info("order created", zap.Float64("total", payload.Total), zap.Int("items", len(payload.Items)))

	return &SubmissionResult{ID: order.ID, Notified: true}, nil
}

func (s *SubmissionService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordOrder(outcome)
	}
}
