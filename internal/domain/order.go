package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle and payment labels. Payment is a stored label only; no
// payment processing happens here.
const (
	OrderStatusPending = "PENDING"
	PaymentUnpaid      = "UNPAID"
)

// CartLine is one requested item in a cart. It is never persisted as-is; an
// order stores snapshots instead.
type CartLine struct {
	ItemID   int64   `json:"itemId"`
	Quantity int     `json:"quantity"`
	AddonIDs []int64 `json:"addonIds"`
}

// EffectiveQuantity resolves the ordered quantity, defaulting to 1 when the
// client omits it or sends a non-positive value.
func (l CartLine) EffectiveQuantity() int {
	if l.Quantity > 0 {
		return l.Quantity
	}
	return 1
}

// Order is the persisted aggregate root. Monetary fields and item snapshots
// are frozen at creation; later catalog edits never change them.
type Order struct {
	ID            int64           `json:"id"`
	Code          string          `json:"orderCode"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	PickupAt      time.Time       `json:"pickupAt"`
	PickupSlotID  *int64          `json:"pickupSlotId,omitempty"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Notes         string          `json:"notes,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"totalAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
	Items         []OrderItem     `json:"items"`
}

// OrderItem is a snapshotted order line. MenuItemID is a soft reference kept
// for traceability only and is never re-read for pricing.
type OrderItem struct {
	ID           int64            `json:"id"`
	OrderID      int64            `json:"-"`
	MenuItemID   *int64           `json:"menuItemId,omitempty"`
	ItemName     string           `json:"itemName"`
	UnitPrice    decimal.Decimal  `json:"unitPrice"`
	Quantity     int              `json:"quantity"`
	LineSubtotal decimal.Decimal  `json:"lineSubtotal"`
	Addons       []OrderItemAddon `json:"addons"`
}

// OrderItemAddon is a snapshotted add-on selection on an order line.
type OrderItemAddon struct {
	ID          int64           `json:"id"`
	OrderItemID int64           `json:"-"`
	AddonID     *int64          `json:"addonId,omitempty"`
	AddonName   string          `json:"addonName"`
	PriceDelta  decimal.Decimal `json:"priceDelta"`
}

// NormalizePhone strips everything but digits so stored numbers and lookups
// always compare in the same format.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
