package catalog

import (
	"context"

	"kitchen-orders/internal/domain"
)

// Repository reads the menu catalog. Each method fetches exactly the shape it
// returns; nothing loads the full catalog tree implicitly.
type Repository interface {
	ListMenus(ctx context.Context) ([]domain.Menu, error)
	GetMenu(ctx context.Context, id int64) (*domain.Menu, error)
	ListCategories(ctx context.Context, menuID int64) ([]domain.MenuCategory, error)
	ListItemsByCategory(ctx context.Context, categoryID int64) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	GetAddon(ctx context.Context, id int64) (*domain.Addon, error)
	ListAddonsForItem(ctx context.Context, itemID int64) ([]domain.Addon, error)
}
