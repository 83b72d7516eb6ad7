package cart

import (
	"testing"

	"whatsfood/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	itemA = model.MenuItem{ID: "cappuccino", Name: "Cappuccino", Price: 120}
	itemB = model.MenuItem{ID: "tiramisu", Name: "Tiramisú", Price: 180}
)

func TestCart_Add_MergesByItemAndNote(t *testing.T) {
	c := New()

	c.Add(itemA, "")
	c.Add(itemA, "")
	c.Add(itemA, "extra spicy")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "", lines[0].Note)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, "extra spicy", lines[1].Note)

	// Quantity aggregates across note variants.
	assert.Equal(t, 3, c.Quantity(itemA.ID))
}

func TestCart_Add_PreservesInsertionOrder(t *testing.T) {
	c := New()

	c.Add(itemB, "")
	c.Add(itemA, "")
	c.Add(itemB, "")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, itemB.ID, lines[0].Item.ID)
	assert.Equal(t, itemA.ID, lines[1].Item.ID)
}

func TestCart_Remove(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(c *Cart)
		removeID      string
		wantLines     int
		wantQuantity  int
		wantFirstNote string
	}{
		{
			name: "Decrements when quantity above one",
			setup: func(c *Cart) {
				c.Add(itemA, "")
				c.Add(itemA, "")
			},
			removeID:     itemA.ID,
			wantLines:    1,
			wantQuantity: 1,
		},
		{
			name: "Deletes line at quantity one",
			setup: func(c *Cart) {
				c.Add(itemA, "")
			},
			removeID:     itemA.ID,
			wantLines:    0,
			wantQuantity: 0,
		},
		{
			name: "No-op when item absent",
			setup: func(c *Cart) {
				c.Add(itemB, "")
			},
			removeID:     itemA.ID,
			wantLines:    1,
			wantQuantity: 0,
		},
		{
			name: "First-inserted note variant loses the unit",
			setup: func(c *Cart) {
				c.Add(itemA, "sin queso")
				c.Add(itemA, "")
				c.Add(itemA, "")
			},
			removeID:      itemA.ID,
			wantLines:     1,
			wantQuantity:  2,
			wantFirstNote: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.setup(c)

			c.Remove(tt.removeID)

			lines := c.Lines()
			assert.Len(t, lines, tt.wantLines)
			assert.Equal(t, tt.wantQuantity, c.Quantity(tt.removeID))
			if tt.wantFirstNote != "" || tt.name == "First-inserted note variant loses the unit" {
				require.NotEmpty(t, lines)
				assert.Equal(t, tt.wantFirstNote, lines[0].Note)
			}

			// No line may survive with quantity below one.
			for _, line := range lines {
				assert.GreaterOrEqual(t, line.Quantity, 1)
			}
		})
	}
}

func TestCart_RemoveAll(t *testing.T) {
	c := New()

	c.Add(itemA, "")
	c.Add(itemA, "extra spicy")
	c.Add(itemA, "extra spicy")
	c.Add(itemB, "")

	c.RemoveAll(itemA.ID)

	assert.Equal(t, 0, c.Quantity(itemA.ID))
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, itemB.ID, c.Lines()[0].Item.ID)
}

func TestCart_Clear(t *testing.T) {
	c := New()

	c.Add(itemA, "")
	c.Add(itemB, "con hielo")
	c.Clear()

	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.Quantity(itemA.ID))
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalAmount())
}

func TestCart_Totals(t *testing.T) {
	c := New()

	c.Add(itemA, "") // 120
	c.Add(itemA, "") // 240
	c.Add(itemB, "") // 420

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 420.0, c.TotalAmount())

	// Recomputation without mutation is idempotent.
	assert.Equal(t, c.TotalAmount(), c.TotalAmount())

	c.Remove(itemB.ID)
	assert.Equal(t, 240.0, c.TotalAmount())
	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_UpdateNote(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(c *Cart)
		oldNote   string
		newNote   string
		wantLines int
		wantNotes map[string]int // note -> quantity
	}{
		{
			name: "Re-keys a line without touching quantity",
			setup: func(c *Cart) {
				c.Add(itemA, "")
				c.Add(itemA, "")
			},
			oldNote:   "",
			newNote:   "sin azúcar",
			wantLines: 1,
			wantNotes: map[string]int{"sin azúcar": 2},
		},
		{
			name: "Merges into existing target line",
			setup: func(c *Cart) {
				c.Add(itemA, "")
				c.Add(itemA, "")
				c.Add(itemA, "sin azúcar")
			},
			oldNote:   "",
			newNote:   "sin azúcar",
			wantLines: 1,
			wantNotes: map[string]int{"sin azúcar": 3},
		},
		{
			name: "No-op when old note does not exist",
			setup: func(c *Cart) {
				c.Add(itemA, "")
			},
			oldNote:   "missing",
			newNote:   "whatever",
			wantLines: 1,
			wantNotes: map[string]int{"": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.setup(c)

			c.UpdateNote(itemA.ID, tt.oldNote, tt.newNote)

			lines := c.Lines()
			require.Len(t, lines, tt.wantLines)

			got := make(map[string]int)
			for _, line := range lines {
				got[line.Note] = line.Quantity
			}
			assert.Equal(t, tt.wantNotes, got)
		})
	}
}

func TestCart_UpdateNote_DoesNotAffectOtherItems(t *testing.T) {
	c := New()

	c.Add(itemA, "")
	c.Add(itemB, "")

	c.UpdateNote(itemA.ID, "", "para llevar")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "para llevar", lines[0].Note)
	assert.Equal(t, "", lines[1].Note)
}
