package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Catalog entities are read-only from the ordering engine's point of view;
// only administrative tooling mutates them.

type Menu struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MenuCategory struct {
	ID           int64  `json:"id"`
	MenuID       int64  `json:"menuId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
	Active       bool   `json:"active"`
}

// MenuItem carries the ids of the add-ons allowed for it rather than the
// add-on entities themselves; callers fetch add-on details per call.
type MenuItem struct {
	ID              int64           `json:"id"`
	CategoryID      int64           `json:"categoryId"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Available       bool            `json:"available"`
	ImageURL        string          `json:"imageUrl,omitempty"`
	DisplayOrder    int             `json:"displayOrder"`
	AllowedAddonIDs []int64         `json:"allowedAddonIds"`
}

// AllowsAddon reports whether the add-on id is in the item's allowed set.
func (m *MenuItem) AllowsAddon(addonID int64) bool {
	for _, id := range m.AllowedAddonIDs {
		if id == addonID {
			return true
		}
	}
	return false
}

// Addon is a priced extra a customer may attach to a menu item. PriceDelta is
// per unit and may be zero or negative.
type Addon struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PriceDelta  decimal.Decimal `json:"priceDelta"`
	Active      bool            `json:"active"`
}
