package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"whatsfood/internal/cart"
	"whatsfood/internal/model"
)

// OrderType is how the customer receives the order.
type OrderType string

const (
	OrderPickup   OrderType = "pickup"
	OrderDelivery OrderType = "delivery"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
)

// Order is the checkout form accompanying a cart.
type Order struct {
	CustomerName string        `json:"customerName"`
	Type         OrderType     `json:"type"`
	Phone        string        `json:"phone,omitempty"`
	Address      string        `json:"address,omitempty"`
	Payment      PaymentMethod `json:"payment"`
	CashAmount   float64       `json:"cashAmount,omitempty"`
	Comments     string        `json:"comments,omitempty"`
}

// Validate checks the form against the cart. Validation errors are
// user-facing; the operation is blocked, nothing is retried.
func Validate(order *Order, lines []cart.Line) error {
	if len(lines) == 0 {
		return model.ErrEmptyCart
	}
	if strings.TrimSpace(order.CustomerName) == "" {
		return model.ErrMissingCustomerName
	}
	if order.Type == OrderDelivery && (order.Phone == "" || order.Address == "") {
		return model.ErrMissingDeliveryDetail
	}
	return nil
}

// Message renders the human-readable order summary sent to the
// restaurant. The format is display-only; nothing downstream parses it.
func Message(cfg *model.SiteConfig, lines []cart.Line, order *Order) string {
	var b strings.Builder

	total := 0.0
	for _, line := range lines {
		total += line.Item.Price * float64(line.Quantity)
	}

	b.WriteString("‼️ NUEVO PEDIDO ‼️\n\n")
	fmt.Fprintf(&b, "🧑 *Cliente:* %s\n", order.CustomerName)

	if order.Type == OrderPickup {
		b.WriteString("🛵 *Tipo:* Para recoger\n")
	} else {
		b.WriteString("🛵 *Tipo:* Delivery\n")
		fmt.Fprintf(&b, "📞 *Teléfono:* %s\n", order.Phone)
		fmt.Fprintf(&b, "📍 *Dirección:* %s\n", order.Address)
	}

	if order.Payment == PaymentCash {
		b.WriteString("💰 *Pago:* Efectivo\n")
		fmt.Fprintf(&b, "💵 *Paga con:* %s\n", cfg.FormatPrice(order.CashAmount))
	} else {
		b.WriteString("💰 *Pago:* Transferencia\n")
	}

	if order.Comments != "" {
		fmt.Fprintf(&b, "\nComentarios: %s\n", order.Comments)
	}

	b.WriteString("\n🛒 *DETALLE DEL PEDIDO*\n")
	for _, line := range lines {
		fmt.Fprintf(&b, "• %dx %s - %s\n",
			line.Quantity, line.Item.Name, cfg.FormatPrice(line.Item.Price*float64(line.Quantity)))
		if line.Note != "" {
			fmt.Fprintf(&b, "   _Nota: %s_\n", line.Note)
		}
	}

	fmt.Fprintf(&b, "\n🧾 *Total:* %s\n\n", cfg.FormatPrice(total))
	b.WriteString("¡Gracias por tu pedido! Lo estaremos preparando pronto.")

	return b.String()
}

// Link builds the WhatsApp deep link carrying the order summary.
func Link(cfg *model.SiteConfig, lines []cart.Line, order *Order) (string, error) {
	if err := Validate(order, lines); err != nil {
		return "", err
	}

	message := Message(cfg, lines, order)
	return fmt.Sprintf("https://wa.me/%s?text=%s", cfg.WhatsAppNumber, url.QueryEscape(message)), nil
}
