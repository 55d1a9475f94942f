package domain

import "time"

type PaymentMethod string

const (
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentCash     PaymentMethod = "efectivo"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentTransfer || m == PaymentCash
}

type DeliveryMethod string

const (
	DeliveryPickup      DeliveryMethod = "retiro_colegio"
	DeliveryStarken     DeliveryMethod = "envio_starken"
	DeliveryChilexpress DeliveryMethod = "envio_chileexpress"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryPickup || m.IsCourierShipment()
}

// IsCourierShipment reports whether the order leaves the store through a
// courier, which requires a destination comuna and a quoted shipping cost.
func (m DeliveryMethod) IsCourierShipment() bool {
	return m == DeliveryStarken || m == DeliveryChilexpress
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Customer struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

type CourierMeta struct {
	Name         string `json:"name,omitempty"`
	DeliveryType string `json:"deliveryType,omitempty"`
	ServiceType  string `json:"serviceType,omitempty"`
}

type Delivery struct {
	Method            DeliveryMethod `json:"method"`
	DestinationComuna *string        `json:"destinationComuna,omitempty"`
	ShippingCost      *float64       `json:"shippingCost,omitempty"`
	EtaDays           *int           `json:"etaDays,omitempty"`
	CourierMeta       *CourierMeta   `json:"courierMeta,omitempty"`
}

// ShippingCostOrZero is the cost charged for delivery; pickup orders and
// shipments without a quoted cost contribute nothing.
func (d Delivery) ShippingCostOrZero() float64 {
	if !d.Method.IsCourierShipment() || d.ShippingCost == nil {
		return 0
	}
	return *d.ShippingCost
}

type CashPayment struct {
	Institution string `json:"institution"`
	Course      string `json:"course"`
}

type Payment struct {
	Method PaymentMethod `json:"method"`
	Cash   *CashPayment  `json:"cash,omitempty"`
}

// OrderPayload is the frozen snapshot submitted at checkout. It never points
// back to live catalog records, so later catalog edits do not rewrite history.
type OrderPayload struct {
	Items     []OrderItem `json:"items"`
	Customer  *Customer   `json:"customer"`
	Delivery  *Delivery   `json:"delivery"`
	Payment   *Payment    `json:"payment"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt,omitzero"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch status := OrderStatus(s); status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return status, true
	default:
		return "", false
	}
}

type Order struct {
	ID        string
	Status    OrderStatus
	Payload   OrderPayload
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	DefaultListLimit = 5
	MaxListLimit     = 20
)

// ListFilter selects the newest orders, optionally by status. Status is kept
// as given so unknown values simply match nothing.
type ListFilter struct {
	Limit  int
	Status string
}

// Normalize clamps the limit to [1, MaxListLimit], defaulting when unset.
func (f ListFilter) Normalize() ListFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		f.Limit = MaxListLimit
	}
	return f
}
