package model

// MenuItem represents a single dish or drink on the menu.
// Items are edited only through the admin catalogue editor, which
// replaces the whole record.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// Category groups menu items under a display name and icon glyph.
// The item order is significant and drives both display and the
// admin move up/down reordering.
type Category struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Icon  string     `json:"icon"`
	Items []MenuItem `json:"items"`
}
