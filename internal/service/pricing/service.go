package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"kitchen-orders/internal/domain"
)

// two-decimal currency rounding, half up
func money(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

type catalogRepo interface {
	GetItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	GetAddon(ctx context.Context, id int64) (*domain.Addon, error)
}

// Service prices carts against the current catalog. It is read-only and
// recomputes every quote from scratch; nothing is cached.
//
// Rules:
//   - line subtotal = round2((item price + sum(addon deltas)) * quantity)
//   - subtotal      = sum(line subtotals)
//   - tax           = round2(subtotal * taxRate)
//   - total         = round2(subtotal + tax)
type Service struct {
	catalog        catalogRepo
	taxRate        decimal.Decimal
	validateAddons bool
}

func New(catalog catalogRepo, taxRate decimal.Decimal, validateAddons bool) *Service {
	if taxRate.IsNegative() {
		taxRate = decimal.Zero
	}
	return &Service{catalog: catalog, taxRate: taxRate, validateAddons: validateAddons}
}

// Quote is the full price breakdown for a cart.
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// AddonQuote is one resolved add-on selection inside a priced line.
type AddonQuote struct {
	AddonID    int64
	Name       string
	PriceDelta decimal.Decimal
}

// LineQuote is one fully resolved, priced cart line. BasePrice is the item
// price alone; UnitPrice includes add-on deltas.
type LineQuote struct {
	ItemID    int64
	ItemName  string
	BasePrice decimal.Decimal
	UnitPrice decimal.Decimal
	Quantity  int
	Addons    []AddonQuote
	Subtotal  decimal.Decimal
}

// Cart prices a whole cart.
func (s *Service) Cart(ctx context.Context, lines []domain.CartLine) (*Quote, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		lq, err := s.Line(ctx, line)
		if err != nil {
			return nil, err
		}
		subtotal = subtotal.Add(lq.Subtotal)
	}

	tax := money(subtotal.Mul(s.taxRate))
	total := money(subtotal.Add(tax))
	return &Quote{Subtotal: subtotal, Tax: tax, Total: total}, nil
}

// Line resolves and prices a single cart line. Order assembly snapshots are
// built from the same result, so stored line subtotals can never diverge from
// quoted ones.
func (s *Service) Line(ctx context.Context, line domain.CartLine) (*LineQuote, error) {
	item, err := s.catalog.GetItem(ctx, line.ItemID)
	if err != nil {
		return nil, fmt.Errorf("menu item %d: %w", line.ItemID, err)
	}

	qty := line.EffectiveQuantity()
	addonSum := decimal.Zero
	var addons []AddonQuote
	for _, addonID := range line.AddonIDs {
		// Items with no configured allowed set accept any add-on.
		if s.validateAddons && len(item.AllowedAddonIDs) > 0 && !item.AllowsAddon(addonID) {
			return nil, domain.Validationf(domain.CodeInvalidAddon,
				"addon %d is not allowed for item %d", addonID, item.ID)
		}
		addon, err := s.catalog.GetAddon(ctx, addonID)
		if err != nil {
			return nil, fmt.Errorf("addon %d: %w", addonID, err)
		}
		addonSum = addonSum.Add(addon.PriceDelta)
		addons = append(addons, AddonQuote{AddonID: addon.ID, Name: addon.Name, PriceDelta: addon.PriceDelta})
	}

	unit := item.Price.Add(addonSum)
	return &LineQuote{
		ItemID:    item.ID,
		ItemName:  item.Name,
		BasePrice: item.Price,
		UnitPrice: unit,
		Quantity:  qty,
		Addons:    addons,
		Subtotal:  money(unit.Mul(decimal.NewFromInt(int64(qty)))),
	}, nil
}
