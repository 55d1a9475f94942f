package notifier

import (
	"fmt"
	"strings"

	"praktico/internal/commons"
	"praktico/internal/domain"

	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// BuildOrderMessage renders the plain-text order summary sent to the store
// operators.
func BuildOrderMessage(storeName string, p domain.OrderPayload) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("Nuevo pedido · %s", storeName)
	line("Fecha: %s", p.CreatedAt.UTC().Format(timestampLayout))
	line("")

	line("Cliente:")
	if c := p.Customer; c != nil {
		line("- Nombre: %s", c.Name)
		line("- Teléfono: %s", c.Phone)
		if v := deref(c.Email); v != "" {
			line("- Email: %s", v)
		}
		if v := deref(c.Address); v != "" {
			line("- Dirección: %s", v)
		}
		if v := deref(c.Notes); v != "" {
			line("- Comentarios: %s", v)
		}
	}
	line("")

	line("Productos:")
	for _, item := range p.Items {
		subtotal := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		line("- %s x%d = %s", item.Name, item.Quantity, commons.FormatCLPDecimal(subtotal))
	}
	line("")

	line("Entrega:")
	if d := p.Delivery; d != nil && d.Method.IsCourierShipment() {
		line("- Método: envío (%s)", courierLabel(d.Method))
		line("- Comuna destino: %s", deref(d.DestinationComuna))
		if d.EtaDays != nil && *d.EtaDays > 0 {
			line("- Estimación: %d día(s)", *d.EtaDays)
		}
		if d.CourierMeta != nil && d.CourierMeta.Name != "" {
			line("- Opción: %s", d.CourierMeta.Name)
		}
		line("- Envío: %s", commons.FormatCLPDecimal(decimal.NewFromFloat(d.ShippingCostOrZero())))
	} else {
		line("- Método: retiro en colegio")
	}
	line("")

	line("Total: %s", commons.FormatCLPDecimal(decimal.NewFromFloat(p.Total)))
	line("")

	if pay := p.Payment; pay != nil {
		line("Pago: %s", pay.Method)
		if pay.Method == domain.PaymentCash {
			var cash domain.CashPayment
			if pay.Cash != nil {
				cash = *pay.Cash
			}
			line("- Institución: %s", cash.Institution)
			line("- Curso: %s", cash.Course)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatNotification prefixes the summary with the order id and wraps it in
// a code block so chat clients keep the layout.
func FormatNotification(storeName string, order domain.Order) string {
	content := fmt.Sprintf("ID: %s\n\n%s", order.ID, BuildOrderMessage(storeName, order.Payload))
	return "```\n" + content + "\n```"
}

func courierLabel(m domain.DeliveryMethod) string {
	if m == domain.DeliveryChilexpress {
		return "Chilexpress"
	}
	return "Starken"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
