package menu

import (
	"context"

	"kitchen-orders/internal/domain"
)

type catalogRepo interface {
	ListMenus(ctx context.Context) ([]domain.Menu, error)
	GetMenu(ctx context.Context, id int64) (*domain.Menu, error)
	ListCategories(ctx context.Context, menuID int64) ([]domain.MenuCategory, error)
	ListItemsByCategory(ctx context.Context, categoryID int64) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	ListAddonsForItem(ctx context.Context, itemID int64) ([]domain.Addon, error)
}

// Service exposes the browsable menu catalog. Reads only; catalog mutation is
// out of scope for the ordering engine.
type Service struct {
	catalog catalogRepo
}

func New(catalog catalogRepo) *Service {
	return &Service{catalog: catalog}
}

// Tree is a menu with its categories and their items, assembled from explicit
// per-level queries.
type Tree struct {
	Menu       domain.Menu
	Categories []CategoryTree
}

type CategoryTree struct {
	Category domain.MenuCategory
	Items    []domain.MenuItem
}

func (s *Service) Menus(ctx context.Context) ([]domain.Menu, error) {
	return s.catalog.ListMenus(ctx)
}

// MenuTree assembles the full browsing tree for one menu.
func (s *Service) MenuTree(ctx context.Context, menuID int64) (*Tree, error) {
	m, err := s.catalog.GetMenu(ctx, menuID)
	if err != nil {
		return nil, err
	}
	categories, err := s.catalog.ListCategories(ctx, menuID)
	if err != nil {
		return nil, err
	}

	tree := &Tree{Menu: *m}
	for _, c := range categories {
		items, err := s.catalog.ListItemsByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		tree.Categories = append(tree.Categories, CategoryTree{Category: c, Items: items})
	}
	return tree, nil
}

func (s *Service) ItemsByCategory(ctx context.Context, categoryID int64) ([]domain.MenuItem, error) {
	return s.catalog.ListItemsByCategory(ctx, categoryID)
}

func (s *Service) Item(ctx context.Context, itemID int64) (*domain.MenuItem, error) {
	return s.catalog.GetItem(ctx, itemID)
}

// AddonsForItem lists the add-ons allowed for an item. The item must exist.
func (s *Service) AddonsForItem(ctx context.Context, itemID int64) ([]domain.Addon, error) {
	if _, err := s.catalog.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.catalog.ListAddonsForItem(ctx, itemID)
}
