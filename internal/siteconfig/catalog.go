package siteconfig

import (
	"sort"

	"whatsfood/internal/model"
)

// Catalogue editing helpers used by the admin surface. All of them
// mutate the given config in place; callers edit a Clone and hand the
// result to Store.Save.

// AddDenomination inserts a cash denomination keeping the list sorted
// ascending by value. A duplicate value is rejected.
func AddDenomination(cfg *model.SiteConfig, d model.CashDenomination) error {
	for _, existing := range cfg.CashDenominations {
		if existing.Value == d.Value {
			return model.ErrDuplicateDenomination
		}
	}

	idx := sort.Search(len(cfg.CashDenominations), func(i int) bool {
		return cfg.CashDenominations[i].Value > d.Value
	})

	cfg.CashDenominations = append(cfg.CashDenominations, model.CashDenomination{})
	copy(cfg.CashDenominations[idx+1:], cfg.CashDenominations[idx:])
	cfg.CashDenominations[idx] = d
	return nil
}

// RemoveDenomination drops the denomination with the given value.
func RemoveDenomination(cfg *model.SiteConfig, value float64) {
	kept := cfg.CashDenominations[:0]
	for _, d := range cfg.CashDenominations {
		if d.Value != value {
			kept = append(kept, d)
		}
	}
	cfg.CashDenominations = kept
}

// AddCategory appends a category to the end of the list.
func AddCategory(cfg *model.SiteConfig, cat model.Category) {
	cfg.Categories = append(cfg.Categories, cat)
}

// RemoveCategory deletes a category by ID, closing the gap so ordering
// stays strict.
func RemoveCategory(cfg *model.SiteConfig, id string) error {
	for i, cat := range cfg.Categories {
		if cat.ID == id {
			cfg.Categories = append(cfg.Categories[:i], cfg.Categories[i+1:]...)
			return nil
		}
	}
	return model.ErrCategoryNotFound
}

// MoveCategoryUp swaps the category with its predecessor. Already at
// the top is a no-op.
func MoveCategoryUp(cfg *model.SiteConfig, id string) error {
	idx := categoryIndex(cfg, id)
	if idx == -1 {
		return model.ErrCategoryNotFound
	}
	if idx > 0 {
		cfg.Categories[idx-1], cfg.Categories[idx] = cfg.Categories[idx], cfg.Categories[idx-1]
	}
	return nil
}

// MoveCategoryDown swaps the category with its successor. Already at
// the bottom is a no-op.
func MoveCategoryDown(cfg *model.SiteConfig, id string) error {
	idx := categoryIndex(cfg, id)
	if idx == -1 {
		return model.ErrCategoryNotFound
	}
	if idx < len(cfg.Categories)-1 {
		cfg.Categories[idx], cfg.Categories[idx+1] = cfg.Categories[idx+1], cfg.Categories[idx]
	}
	return nil
}

// UpsertItem replaces the item record in the category when the ID
// already exists, otherwise appends it.
func UpsertItem(cfg *model.SiteConfig, categoryID string, item model.MenuItem) error {
	idx := categoryIndex(cfg, categoryID)
	if idx == -1 {
		return model.ErrCategoryNotFound
	}

	items := cfg.Categories[idx].Items
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return nil
		}
	}
	cfg.Categories[idx].Items = append(items, item)
	return nil
}

// RemoveItem deletes a menu item by ID from whichever category holds
// it.
func RemoveItem(cfg *model.SiteConfig, itemID string) error {
	for i := range cfg.Categories {
		items := cfg.Categories[i].Items
		for j := range items {
			if items[j].ID == itemID {
				cfg.Categories[i].Items = append(items[:j], items[j+1:]...)
				return nil
			}
		}
	}
	return model.ErrItemNotFound
}

func categoryIndex(cfg *model.SiteConfig, id string) int {
	for i, cat := range cfg.Categories {
		if cat.ID == id {
			return i
		}
	}
	return -1
}
