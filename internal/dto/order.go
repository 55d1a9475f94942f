package dto

import (
	"time"

	"praktico/internal/domain"
)

type CreateOrderResponse struct {
	OK      bool   `json:"ok"`
	ID      string `json:"id"`
	Warning string `json:"warning,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderStatusView struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type UpdateStatusResponse struct {
	OK    bool            `json:"ok"`
	Order OrderStatusView `json:"order"`
}

type OrderLineSummary struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// OrderSummary is the compact listing shape used by the operator bot.
type OrderSummary struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Items     []OrderLineSummary `json:"items"`
	Total     float64            `json:"total"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

type OrderDetail struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
	Payload   domain.OrderPayload `json:"payload"`
}

type ListOrdersResponse struct {
	OK     bool `json:"ok"`
	Orders any  `json:"orders"`
}

func NewOrderSummary(o domain.Order) OrderSummary {
	summary := OrderSummary{
		ID:        o.ID,
		Items:     make([]OrderLineSummary, len(o.Payload.Items)),
		Total:     o.Payload.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
	}
	if o.Payload.Customer != nil {
		summary.Name = o.Payload.Customer.Name
		summary.Phone = o.Payload.Customer.Phone
	}
	for i, item := range o.Payload.Items {
		summary.Items[i] = OrderLineSummary{Name: item.Name, Qty: item.Quantity}
	}
	return summary
}

func NewOrderDetail(o domain.Order) OrderDetail {
	return OrderDetail{
		ID:        o.ID,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Payload:   o.Payload,
	}
}
