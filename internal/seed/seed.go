package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type itemSeed struct {
	Name        string
	Description string
	Price       string
	Addons      []string
}

// Apply inserts a small menu, add-ons and pickup slots for manual testing.
// It is idempotent: rows are matched by name and only inserted when missing.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	menuID, err := ensureMenu(ctx, pool, "Weekly Menu", "Home-cooked meals for pickup")
	if err != nil {
		return fmt.Errorf("ensure menu: %w", err)
	}

	addons := map[string]string{
		"Extra Protein": "3.00",
		"Extra Rice":    "1.50",
		"Hot Sauce":     "0.00",
	}
	addonIDs := make(map[string]int64, len(addons))
	for name, delta := range addons {
		id, err := ensureAddon(ctx, pool, name, delta)
		if err != nil {
			return fmt.Errorf("ensure addon %s: %w", name, err)
		}
		addonIDs[name] = id
	}

	mains, err := ensureCategory(ctx, pool, menuID, "Mains", 0)
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}
	sides, err := ensureCategory(ctx, pool, menuID, "Sides", 1)
	if err != nil {
		return fmt.Errorf("ensure category: %w", err)
	}

	items := []struct {
		categoryID int64
		item       itemSeed
	}{
		{mains, itemSeed{Name: "Chicken Adobo", Description: "Braised chicken, garlic rice", Price: "12.50", Addons: []string{"Extra Protein", "Extra Rice", "Hot Sauce"}}},
		{mains, itemSeed{Name: "Beef Caldereta", Description: "Slow-cooked beef stew", Price: "14.00", Addons: []string{"Extra Rice", "Hot Sauce"}}},
		{sides, itemSeed{Name: "Lumpia (6 pc)", Description: "Crispy spring rolls", Price: "6.00", Addons: []string{"Hot Sauce"}}},
	}
	for _, entry := range items {
		itemID, err := ensureItem(ctx, pool, entry.categoryID, entry.item)
		if err != nil {
			return fmt.Errorf("ensure item %s: %w", entry.item.Name, err)
		}
		for _, addonName := range entry.item.Addons {
			if err := linkAddon(ctx, pool, itemID, addonIDs[addonName]); err != nil {
				return fmt.Errorf("link addon %s: %w", addonName, err)
			}
		}
	}

	slots := []struct {
		day        int
		start, end string
	}{
		{5, "11:00", "13:00"},
		{5, "17:00", "19:00"},
		{6, "11:00", "14:00"},
	}
	for _, s := range slots {
		if err := ensureSlot(ctx, pool, s.day, s.start, s.end); err != nil {
			return fmt.Errorf("ensure slot day=%d: %w", s.day, err)
		}
	}

	return nil
}

func ensureMenu(ctx context.Context, pool *pgxpool.Pool, name, description string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM menu WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
INSERT INTO menu (name, description) VALUES ($1, $2) RETURNING id
`, name, description).Scan(&id)
	return id, err
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, menuID int64, name string, displayOrder int) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM menu_category WHERE menu_id = $1 AND name = $2`, menuID, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
INSERT INTO menu_category (menu_id, name, display_order) VALUES ($1, $2, $3) RETURNING id
`, menuID, name, displayOrder).Scan(&id)
	return id, err
}

func ensureItem(ctx context.Context, pool *pgxpool.Pool, categoryID int64, item itemSeed) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM menu_item WHERE category_id = $1 AND name = $2`, categoryID, item.Name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
INSERT INTO menu_item (category_id, name, description, price) VALUES ($1, $2, $3, $4::numeric) RETURNING id
`, categoryID, item.Name, item.Description, item.Price).Scan(&id)
	return id, err
}

func ensureAddon(ctx context.Context, pool *pgxpool.Pool, name, priceDelta string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `SELECT id FROM addon WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx, `
INSERT INTO addon (name, price_delta) VALUES ($1, $2::numeric) RETURNING id
`, name, priceDelta).Scan(&id)
	return id, err
}

func linkAddon(ctx context.Context, pool *pgxpool.Pool, itemID, addonID int64) error {
	_, err := pool.Exec(ctx, `
INSERT INTO menu_item_addon (menu_item_id, addon_id) VALUES ($1, $2)
ON CONFLICT DO NOTHING
`, itemID, addonID)
	return err
}

func ensureSlot(ctx context.Context, pool *pgxpool.Pool, day int, start, end string) error {
	var id int64
	err := pool.QueryRow(ctx, `
SELECT id FROM pickup_slot WHERE day_of_week = $1 AND start_time = $2::time AND end_time = $3::time
`, day, start, end).Scan(&id)
	if err == nil {
		return nil
	}
	_, err = pool.Exec(ctx, `
INSERT INTO pickup_slot (day_of_week, start_time, end_time) VALUES ($1, $2::time, $3::time)
`, day, start, end)
	return err
}
