package cart

import (
	"sync"

	"whatsfood/internal/model"
)

// Line is one distinct (item, note) entry in a cart with its quantity.
// Two additions of the same item with different note text stay separate
// lines; same item and same note accumulate quantity.
type Line struct {
	Item     model.MenuItem `json:"item"`
	Quantity int            `json:"quantity"`
	Note     string         `json:"note,omitempty"`
}

// Cart is an ordered collection of lines. Insertion order is display
// order. A line's quantity is always at least 1; dropping to 0 removes
// the line entirely.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of the item into the cart. If a line with the same
// item ID and note already exists its quantity is incremented, otherwise
// a new line is appended.
func (c *Cart) Add(item model.MenuItem, note string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID && c.lines[i].Note == note {
			c.lines[i].Quantity++
			return
		}
	}

	c.lines = append(c.lines, Line{Item: item, Quantity: 1, Note: note})
}

// Remove takes one unit off the first line matching the item ID,
// regardless of note. When the line's quantity is 1 the line is deleted.
// No-op when no line matches. With several note variants of the same
// item only the earliest-inserted line is affected; this mirrors the
// storefront's original behaviour.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID != itemID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
		} else {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// RemoveAll deletes every line for the item ID outright, ignoring notes
// and quantities.
func (c *Cart) RemoveAll(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.Item.ID != itemID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Quantity returns the total units of the item across all note
// variants. Used to render a single quantity badge per catalogue item.
func (c *Cart) Quantity(itemID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		if line.Item.ID == itemID {
			total += line.Quantity
		}
	}
	return total
}

// UpdateNote moves the (itemID, oldNote) line to newNote without
// touching its quantity. If a line with (itemID, newNote) already
// exists the two quantities merge into it. No-op when no line matches
// the old key.
func (c *Cart) UpdateNote(itemID, oldNote, newNote string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if oldNote == newNote {
		return
	}

	src := -1
	dst := -1
	for i := range c.lines {
		if c.lines[i].Item.ID != itemID {
			continue
		}
		switch c.lines[i].Note {
		case oldNote:
			src = i
		case newNote:
			dst = i
		}
	}

	if src == -1 {
		return
	}

	if dst == -1 {
		c.lines[src].Note = newNote
		return
	}

	c.lines[dst].Quantity += c.lines[src].Quantity
	c.lines = append(c.lines[:src], c.lines[src+1:]...)
}

// TotalAmount is the sum of price times quantity over all lines.
func (c *Cart) TotalAmount() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, line := range c.lines {
		total += line.Item.Price * float64(line.Quantity)
	}
	return total
}

// TotalItems is the sum of quantities over all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}
