package model

import "fmt"

// Theme holds the storefront colour set.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	AccentColor     string `json:"accentColor"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// CashDenomination is a bill value offered on the cash payment form.
// Values are unique within a config and kept sorted ascending.
type CashDenomination struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// SiteConfig is the restaurant-wide configuration: identity, theme,
// payment denominations and the full menu catalogue. It is the unit of
// override-and-persist; the admin panel edits a deep copy and replaces
// the active config atomically on save.
type SiteConfig struct {
	RestaurantName    string             `json:"restaurantName"`
	WhatsAppNumber    string             `json:"whatsappNumber"`
	Currency          string             `json:"currency"`
	OpeningHours      string             `json:"openingHours"`
	FooterText        string             `json:"footerText"`
	Theme             Theme              `json:"theme"`
	CashDenominations []CashDenomination `json:"cashDenominations"`
	Categories        []Category         `json:"categories"`
}

// Clone returns a deep copy of the config so edits never alias the
// active instance.
func (c *SiteConfig) Clone() *SiteConfig {
	out := *c

	out.CashDenominations = make([]CashDenomination, len(c.CashDenominations))
	copy(out.CashDenominations, c.CashDenominations)

	out.Categories = make([]Category, len(c.Categories))
	for i, cat := range c.Categories {
		items := make([]MenuItem, len(cat.Items))
		copy(items, cat.Items)
		cat.Items = items
		out.Categories[i] = cat
	}

	return &out
}

// FindItem looks up a menu item by ID across all categories.
// Returns nil when the item does not exist.
func (c *SiteConfig) FindItem(id string) *MenuItem {
	for i := range c.Categories {
		for j := range c.Categories[i].Items {
			if c.Categories[i].Items[j].ID == id {
				return &c.Categories[i].Items[j]
			}
		}
	}
	return nil
}

// FormatPrice renders an amount with the configured currency symbol.
func (c *SiteConfig) FormatPrice(amount float64) string {
	return fmt.Sprintf("%s%.2f", c.Currency, amount)
}

// DefaultSiteConfig returns the compiled-in configuration used when no
// persisted config exists or the persisted blob cannot be read.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		RestaurantName: "WHATSFOOD",
		WhatsAppNumber: "18092010357",
		Currency:       "RD$",
		OpeningHours:   "8:00 AM - 10:00 PM",
		FooterText:     "© 2023 WHATSFOOD. Frescamente Cocinado para ti.",
		Theme: Theme{
			PrimaryColor:    "#004d2a",
			AccentColor:     "#00873e",
			TextColor:       "#333333",
			BackgroundColor: "#f5f5f5",
		},
		CashDenominations: []CashDenomination{
			{Value: 200, Label: "RD$200"},
			{Value: 500, Label: "RD$500"},
			{Value: 1000, Label: "RD$1000"},
			{Value: 2000, Label: "RD$2000"},
		},
		Categories: []Category{
			{
				ID:   "bebidas",
				Name: "Bebidas",
				Icon: "🥤",
				Items: []MenuItem{
					{ID: "cappuccino", Name: "Cappuccino", Description: "Rico espresso con espumosa leche", Price: 120},
					{ID: "cafe-frio", Name: "Café Frío", Description: "Café helado servido con crema", Price: 140},
					{ID: "te-verde", Name: "Té Verde", Description: "Premium té verde japonés", Price: 90},
					{ID: "soda-lima", Name: "Soda de Lima Fresca", Description: "Refrescante soda con menta", Price: 70},
				},
			},
			{
				ID:   "plato-principal",
				Name: "Plato Principal",
				Icon: "🍽️",
				Items: []MenuItem{
					{ID: "sandwich-vegetariano", Name: "Sándwich Vegetariano", Description: "Vegetales a la parrilla con queso", Price: 90},
					{ID: "pasta-alfredo", Name: "Pasta Alfredo", Description: "Cremosa pasta blanca", Price: 180},
					{ID: "pizza-margherita", Name: "Pizza Margherita", Description: "Queso, tomate y albahaca", Price: 220},
					{ID: "hamburguesa-vegetariana", Name: "Hamburguesa Vegetariana", Description: "Hamburguesa de vegetales frescos", Price: 150},
				},
			},
			{
				ID:   "ensaladas",
				Name: "Ensaladas",
				Icon: "🥗",
				Items: []MenuItem{
					{ID: "ensalada-griega", Name: "Ensalada Griega", Description: "Vegetales frescos con queso feta", Price: 160},
					{ID: "ensalada-cesar", Name: "Ensalada César", Description: "Lechuga crujiente con aderezo clásico", Price: 160},
				},
			},
			{
				ID:   "postres",
				Name: "Postres",
				Icon: "🍰",
				Items: []MenuItem{
					{ID: "brownie-chocolate", Name: "Brownie de Chocolate", Description: "Caliente brownie de chocolate", Price: 120},
					{ID: "sundae-helado", Name: "Sundae de Helado", Description: "Helado surtido con toppings", Price: 150},
					{ID: "tiramisu", Name: "Tiramisú", Description: "Postre italiano de café", Price: 180},
				},
			},
		},
	}
}
