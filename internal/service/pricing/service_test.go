package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"kitchen-orders/internal/domain"
)

type stubCatalog struct {
	items  map[int64]*domain.MenuItem
	addons map[int64]*domain.Addon
}

func (s *stubCatalog) GetItem(_ context.Context, id int64) (*domain.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func (s *stubCatalog) GetAddon(_ context.Context, id int64) (*domain.Addon, error) {
	addon, ok := s.addons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return addon, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testCatalog() *stubCatalog {
	return &stubCatalog{
		items: map[int64]*domain.MenuItem{
			1: {ID: 1, Name: "Chicken Adobo", Price: dec("10.00"), AllowedAddonIDs: []int64{10}},
			2: {ID: 2, Name: "Lumpia", Price: dec("6.00")},
		},
		addons: map[int64]*domain.Addon{
			10: {ID: 10, Name: "Extra Rice", PriceDelta: dec("1.50")},
			11: {ID: 11, Name: "Hot Sauce", PriceDelta: dec("0.00")},
		},
	}
}

func TestCartWorkedExample(t *testing.T) {
	svc := New(testCatalog(), dec("0.06"), true)
	quote, err := svc.Cart(context.Background(), []domain.CartLine{
		{ItemID: 1, Quantity: 2, AddonIDs: []int64{10}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := quote.Subtotal.String(); got != "23" {
		t.Fatalf("subtotal = %s, want 23", got)
	}
	if got := quote.Tax.String(); got != "1.38" {
		t.Fatalf("tax = %s, want 1.38", got)
	}
	if got := quote.Total.String(); got != "24.38" {
		t.Fatalf("total = %s, want 24.38", got)
	}
}

func TestCartIdempotent(t *testing.T) {
	svc := New(testCatalog(), dec("0.06"), true)
	lines := []domain.CartLine{
		{ItemID: 1, Quantity: 2, AddonIDs: []int64{10}},
		{ItemID: 2, Quantity: 1},
	}
	first, err := svc.Cart(context.Background(), lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Cart(context.Background(), lines)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Subtotal.Equal(second.Subtotal) || !first.Tax.Equal(second.Tax) || !first.Total.Equal(second.Total) {
		t.Fatalf("quotes differ: %+v vs %+v", first, second)
	}
}

func TestCartEmpty(t *testing.T) {
	svc := New(testCatalog(), dec("0.06"), true)
	quote, err := svc.Cart(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Subtotal.IsZero() || !quote.Tax.IsZero() || !quote.Total.IsZero() {
		t.Fatalf("empty cart should be all zeros, got %+v", quote)
	}
}

func TestLineDefaultQuantity(t *testing.T) {
	svc := New(testCatalog(), dec("0.06"), true)
	lq, err := svc.Line(context.Background(), domain.CartLine{ItemID: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lq.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", lq.Quantity)
	}
	if got := lq.Subtotal.String(); got != "6" {
		t.Fatalf("subtotal = %s, want 6", got)
	}
}

func TestLineUnknownItem(t *testing.T) {
	svc := New(testCatalog(), dec("0.06"), true)
	_, err := svc.Line(context.Background(), domain.CartLine{ItemID: 99, Quantity: 1})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLineUnknownAddon(t *testing.T) {
	catalog := testCatalog()
	catalog.items[1].AllowedAddonIDs = []int64{10, 99}
	svc := New(catalog, dec("0.06"), true)
	_, err := svc.Line(context.Background(), domain.CartLine{ItemID: 1, Quantity: 1, AddonIDs: []int64{99}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLineDisallowedAddon(t *testing.T) {
	svc := New(testCatalog(), dec("0.06"), true)
	_, err := svc.Line(context.Background(), domain.CartLine{ItemID: 1, Quantity: 1, AddonIDs: []int64{11}})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Code != domain.CodeInvalidAddon {
		t.Fatalf("expected %s validation error, got %v", domain.CodeInvalidAddon, err)
	}
}

func TestLineNoAllowedSetAcceptsAnyAddon(t *testing.T) {
	// Item 2 has no configured allowed set, so any existing add-on is accepted.
	svc := New(testCatalog(), dec("0.06"), true)
	lq, err := svc.Line(context.Background(), domain.CartLine{ItemID: 2, Quantity: 1, AddonIDs: []int64{10}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lq.Subtotal.String(); got != "7.5" {
		t.Fatalf("subtotal = %s, want 7.5", got)
	}
}

func TestLineValidationDisabled(t *testing.T) {
	svc := New(testCatalog(), dec("0.06"), false)
	lq, err := svc.Line(context.Background(), domain.CartLine{ItemID: 1, Quantity: 1, AddonIDs: []int64{11}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lq.UnitPrice.String(); got != "10" {
		t.Fatalf("unit price = %s, want 10", got)
	}
}

func TestLineZeroPriceAddon(t *testing.T) {
	catalog := testCatalog()
	catalog.items[1].AllowedAddonIDs = []int64{10, 11}
	svc := New(catalog, dec("0.06"), true)
	lq, err := svc.Line(context.Background(), domain.CartLine{ItemID: 1, Quantity: 2, AddonIDs: []int64{11}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := lq.Subtotal.String(); got != "20" {
		t.Fatalf("subtotal = %s, want 20", got)
	}
	if len(lq.Addons) != 1 || lq.Addons[0].Name != "Hot Sauce" {
		t.Fatalf("unexpected addons: %+v", lq.Addons)
	}
}

func TestZeroTaxRate(t *testing.T) {
	svc := New(testCatalog(), decimal.Zero, true)
	quote, err := svc.Cart(context.Background(), []domain.CartLine{{ItemID: 2, Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Tax.IsZero() {
		t.Fatalf("tax = %s, want 0", quote.Tax)
	}
	if !quote.Total.Equal(quote.Subtotal) {
		t.Fatalf("total %s should equal subtotal %s", quote.Total, quote.Subtotal)
	}
}

func TestNegativeTaxRateClamped(t *testing.T) {
	svc := New(testCatalog(), dec("-0.06"), true)
	quote, err := svc.Cart(context.Background(), []domain.CartLine{{ItemID: 2, Quantity: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Tax.IsZero() {
		t.Fatalf("tax = %s, want 0", quote.Tax)
	}
}

func TestRoundingHalfUp(t *testing.T) {
	catalog := &stubCatalog{
		items: map[int64]*domain.MenuItem{
			1: {ID: 1, Name: "Odd", Price: dec("3.33")},
		},
	}
	svc := New(catalog, dec("0.075"), true)
	quote, err := svc.Cart(context.Background(), []domain.CartLine{{ItemID: 1, Quantity: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 9.99 * 0.075 = 0.74925 rounds half up to 0.75
	if got := quote.Tax.String(); got != "0.75" {
		t.Fatalf("tax = %s, want 0.75", got)
	}
	if got := quote.Total.String(); got != "10.74" {
		t.Fatalf("total = %s, want 10.74", got)
	}
}
