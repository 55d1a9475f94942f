package validator

import (
	"math"
	"slices"
	"strings"

	"praktico/internal/domain"
	apperrors "praktico/internal/errors"

	"github.com/shopspring/decimal"
)

const MaxItems = 50

// totalTolerance absorbs float noise in client totals.
var totalTolerance = decimal.New(1, -4)

type CashPolicy struct {
	Enabled             bool
	AllowedInstitutions []string
}

// Validator checks a submitted order and recomputes its total. Checks run
// in a fixed order and stop at the first failure, so the customer always
// sees the same message for the same payload.
type Validator struct {
	cash CashPolicy
}

func New(cash CashPolicy) *Validator {
	return &Validator{cash: cash}
}

func (v *Validator) Validate(p domain.OrderPayload) error {
	if len(p.Items) == 0 {
		return reject("items", "Carrito vacío.")
	}
	if len(p.Items) > MaxItems {
		return reject("items", "Demasiados productos.")
	}

	if p.Customer == nil {
		return reject("customer", "Faltan datos del cliente.")
	}
	if strings.TrimSpace(p.Customer.Name) == "" {
		return reject("customer.name", "Nombre obligatorio.")
	}
	if strings.TrimSpace(p.Customer.Phone) == "" {
		return reject("customer.phone", "Teléfono obligatorio.")
	}

	if p.Payment == nil {
		return reject("payment", "Falta método de pago.")
	}
	if !p.Payment.Method.Valid() {
		return reject("payment.method", "Método de pago inválido.")
	}

	if p.Delivery == nil {
		return reject("delivery", "Falta método de entrega.")
	}
	if !p.Delivery.Method.Valid() {
		return reject("delivery.method", "Método de entrega inválido.")
	}

	itemsTotal, ok := ItemsTotal(p.Items)
	if !ok || !itemsTotal.IsPositive() {
		return reject("items", "Total inválido.")
	}

	shipping := decimal.Zero
	if p.Delivery.Method.IsCourierShipment() {
		if p.Delivery.DestinationComuna == nil || strings.TrimSpace(*p.Delivery.DestinationComuna) == "" {
			return reject("delivery.destinationComuna", "Falta comuna de destino para envío.")
		}
		if p.Delivery.ShippingCost == nil || !isFinite(*p.Delivery.ShippingCost) || *p.Delivery.ShippingCost <= 0 {
			return reject("delivery.shippingCost", "Costo de envío inválido.")
		}
		shipping = decimal.NewFromFloat(*p.Delivery.ShippingCost)
	}

	if !isFinite(p.Total) {
		return reject("total", "Total inválido.")
	}

	computed := itemsTotal.Add(shipping)
	if computed.Sub(decimal.NewFromFloat(p.Total)).Abs().GreaterThan(totalTolerance) {
		return reject("total", "Total no coincide.")
	}

	if p.Payment.Method == domain.PaymentCash {
		return v.validateCash(p)
	}

	return nil
}

func (v *Validator) validateCash(p domain.OrderPayload) error {
	var cash domain.CashPayment
	if p.Payment.Cash != nil {
		cash = *p.Payment.Cash
	}

	if !v.cash.Enabled {
		return reject("payment.method", "Pago en efectivo no habilitado.")
	}
	if !slices.Contains(v.cash.AllowedInstitutions, cash.Institution) {
		return reject("payment.cash.institution", "Pago en efectivo no válido para esa institución.")
	}
	if strings.TrimSpace(cash.Course) == "" {
		return reject("payment.cash.course", "Curso obligatorio para pago en efectivo.")
	}
	if p.Delivery.Method != domain.DeliveryPickup {
		return reject("delivery.method", "Pago en efectivo requiere retiro en colegio.")
	}

	return nil
}

// ItemsTotal is the sum of price times quantity over all lines. It reports
// false when a price is NaN or infinite.
func ItemsTotal(items []domain.OrderItem) (decimal.Decimal, bool) {
	total := decimal.Zero
	for _, item := range items {
		if !isFinite(item.Price) {
			return decimal.Zero, false
		}
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, true
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func reject(field, message string) error {
	return apperrors.NewValidationError(message, apperrors.ValidationDetail{
		Field:   field,
		Message: message,
	})
}
