package checkout

import (
	"net/url"
	"strings"
	"testing"

	"whatsfood/internal/cart"
	"whatsfood/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLines() []cart.Line {
	return []cart.Line{
		{Item: model.MenuItem{ID: "cappuccino", Name: "Cappuccino", Price: 120}, Quantity: 2},
		{Item: model.MenuItem{ID: "tiramisu", Name: "Tiramisú", Price: 180}, Quantity: 1, Note: "sin cacao"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		order   *Order
		lines   []cart.Line
		wantErr error
	}{
		{
			name:  "Valid pickup order",
			order: &Order{CustomerName: "Ana", Type: OrderPickup, Payment: PaymentCash, CashAmount: 500},
			lines: testLines(),
		},
		{
			name:  "Valid delivery order",
			order: &Order{CustomerName: "Ana", Type: OrderDelivery, Phone: "8095551234", Address: "Calle 5 #10", Payment: PaymentTransfer},
			lines: testLines(),
		},
		{
			name:    "Empty cart",
			order:   &Order{CustomerName: "Ana", Type: OrderPickup},
			lines:   nil,
			wantErr: model.ErrEmptyCart,
		},
		{
			name:    "Missing name",
			order:   &Order{CustomerName: "  ", Type: OrderPickup},
			lines:   testLines(),
			wantErr: model.ErrMissingCustomerName,
		},
		{
			name:    "Delivery without phone",
			order:   &Order{CustomerName: "Ana", Type: OrderDelivery, Address: "Calle 5 #10"},
			lines:   testLines(),
			wantErr: model.ErrMissingDeliveryDetail,
		},
		{
			name:    "Delivery without address",
			order:   &Order{CustomerName: "Ana", Type: OrderDelivery, Phone: "8095551234"},
			lines:   testLines(),
			wantErr: model.ErrMissingDeliveryDetail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.order, tt.lines)

			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	cfg := model.DefaultSiteConfig()

	t.Run("Cash pickup order", func(t *testing.T) {
		order := &Order{
			CustomerName: "Ana",
			Type:         OrderPickup,
			Payment:      PaymentCash,
			CashAmount:   500,
			Comments:     "Sin servilletas",
		}

		msg := Message(cfg, testLines(), order)

		assert.Contains(t, msg, "‼️ NUEVO PEDIDO ‼️")
		assert.Contains(t, msg, "🧑 *Cliente:* Ana")
		assert.Contains(t, msg, "🛵 *Tipo:* Para recoger")
		assert.Contains(t, msg, "💰 *Pago:* Efectivo")
		assert.Contains(t, msg, "💵 *Paga con:* RD$500.00")
		assert.Contains(t, msg, "Comentarios: Sin servilletas")
		assert.Contains(t, msg, "• 2x Cappuccino - RD$240.00")
		assert.Contains(t, msg, "• 1x Tiramisú - RD$180.00")
		assert.Contains(t, msg, "_Nota: sin cacao_")
		assert.Contains(t, msg, "🧾 *Total:* RD$420.00")
		assert.NotContains(t, msg, "Teléfono")
	})

	t.Run("Transfer delivery order", func(t *testing.T) {
		order := &Order{
			CustomerName: "Beto",
			Type:         OrderDelivery,
			Phone:        "8095551234",
			Address:      "Calle 5 #10",
			Payment:      PaymentTransfer,
		}

		msg := Message(cfg, testLines(), order)

		assert.Contains(t, msg, "🛵 *Tipo:* Delivery")
		assert.Contains(t, msg, "📞 *Teléfono:* 8095551234")
		assert.Contains(t, msg, "📍 *Dirección:* Calle 5 #10")
		assert.Contains(t, msg, "💰 *Pago:* Transferencia")
		assert.NotContains(t, msg, "Paga con")
		assert.NotContains(t, msg, "Comentarios")
	})
}

func TestLink(t *testing.T) {
	cfg := model.DefaultSiteConfig()
	order := &Order{CustomerName: "Ana", Type: OrderPickup, Payment: PaymentTransfer}

	link, err := Link(cfg, testLines(), order)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/18092010357?text="), link)

	// The summary survives the URL encoding round trip.
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "NUEVO PEDIDO")
	assert.Contains(t, text, "Cliente:* Ana")
}

func TestLink_InvalidOrder(t *testing.T) {
	cfg := model.DefaultSiteConfig()

	link, err := Link(cfg, nil, &Order{CustomerName: "Ana"})

	assert.Equal(t, model.ErrEmptyCart, err)
	assert.Empty(t, link)
}
