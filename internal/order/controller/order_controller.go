package controller

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"praktico/internal/domain"
	"praktico/internal/dto"
	apperrors "praktico/internal/errors"
	"praktico/internal/order/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxOrderBodyBytes = 256 << 10

type SubmissionUseCase interface {
	Submit(ctx context.Context, payload domain.OrderPayload) (*service.SubmissionResult, error)
}

type ManagementUseCase interface {
	ListOrders(ctx context.Context, filter domain.ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, rawStatus string) (domain.OrderStatus, error)
}

type OrderController struct {
	submission SubmissionUseCase
	management ManagementUseCase
	logger     *zap.Logger
}

func NewOrderController(submission SubmissionUseCase, management ManagementUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		submission: submission,
		management: management,
		logger:     logger,
	}
}

// Create handles POST /order.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	w.Header().Set("X-Trace-Id", traceID)

	var payload domain.OrderPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBodyBytes)).Decode(&payload); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "JSON inválido.", nil)
		return
	}

	result, err := c.submission.Submit(r.Context(), payload)
	if err != nil {
		c.handleError(w, traceID, err, "No se pudo guardar el pedido.", logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.CreateOrderResponse{
		OK:      true,
		ID:      result.ID,
		Warning: result.Warning,
	})
}

// List handles GET /orders.
func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	w.Header().Set("X-Trace-Id", traceID)

	query := r.URL.Query()
	filter := domain.ListFilter{
		Limit:  parseLimit(query.Get("limit")),
		Status: strings.TrimSpace(query.Get("status")),
	}

	orders, err := c.management.ListOrders(r.Context(), filter)
	if err != nil {
		c.handleError(w, traceID, err, "No se pudieron leer pedidos.", logger)
		return
	}

	if query.Get("compact") == "1" {
		summaries := make([]dto.OrderSummary, len(orders))
		for i, o := range orders {
			summaries[i] = dto.NewOrderSummary(o)
		}
		c.writeJSON(w, http.StatusOK, dto.ListOrdersResponse{OK: true, Orders: summaries})
		return
	}

	details := make([]dto.OrderDetail, len(orders))
	for i, o := range orders {
		details[i] = dto.NewOrderDetail(o)
	}
	c.writeJSON(w, http.StatusOK, dto.ListOrdersResponse{OK: true, Orders: details})
}

// UpdateStatus handles PATCH /order/{id}/status.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	w.Header().Set("X-Trace-Id", traceID)

	id := chi.URLParam(r, "id")

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxOrderBodyBytes)).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeError(w, traceID, http.StatusBadRequest, "JSON inválido.", nil)
		return
	}

	status, err := c.management.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		c.handleError(w, traceID, err, "No se pudo actualizar el pedido.", logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.UpdateStatusResponse{
		OK:    true,
		Order: dto.OrderStatusView{ID: id, Status: string(status)},
	})
}

// parseLimit accepts any positive number, floored to at least 1. Anything
// else yields zero, which the list filter turns into the default.
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n > float64(domain.MaxListLimit) {
		return domain.MaxListLimit
	}
	return max(1, int(math.Floor(n)))
}

func (c *OrderController) handleError(w http.ResponseWriter, traceID string, err error, fallback string, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, traceID, http.StatusBadRequest, ve.Message, ve.Details)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, traceID, http.StatusNotFound, "Pedido no encontrado.", nil)
		return
	}

	logger.Error("order request failed", zap.Error(err))
	c.writeError(w, traceID, http.StatusInternalServerError, fallback, nil)
}

func (c *OrderController) writeError(w http.ResponseWriter, traceID string, status int, message string, details []apperrors.ValidationDetail) {
	c.writeJSON(w, status, dto.ErrorResponse{
		OK:      false,
		Error:   message,
		Details: details,
		TraceID: traceID,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
