package catalog

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kitchen-orders/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListMenus(ctx context.Context) ([]domain.Menu, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), is_active, created_at
FROM menu
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("catalog repo: list menus error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Menu
	for rows.Next() {
		var m domain.Menu
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.Active, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetMenu(ctx context.Context, id int64) (*domain.Menu, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), is_active, created_at
FROM menu
WHERE id = $1
`
	var m domain.Menu
	err := r.pool.QueryRow(ctx, q, id).Scan(&m.ID, &m.Name, &m.Description, &m.Active, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get menu id=%d error=%v", id, err)
		return nil, err
	}
	return &m, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context, menuID int64) ([]domain.MenuCategory, error) {
	const q = `
SELECT id, menu_id, name, COALESCE(description, ''), display_order, is_active
FROM menu_category
WHERE menu_id = $1
ORDER BY display_order ASC, id ASC
`
	rows, err := r.pool.Query(ctx, q, menuID)
	if err != nil {
		r.logger.Printf("catalog repo: list categories menu_id=%d error=%v", menuID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuCategory
	for rows.Next() {
		var c domain.MenuCategory
		if err := rows.Scan(&c.ID, &c.MenuID, &c.Name, &c.Description, &c.DisplayOrder, &c.Active); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const itemColumns = `
SELECT i.id, i.category_id, i.name, COALESCE(i.description, ''), i.price, i.is_available,
       COALESCE(i.image_url, ''), i.display_order,
       COALESCE(array_agg(mia.addon_id ORDER BY mia.addon_id) FILTER (WHERE mia.addon_id IS NOT NULL), '{}')
FROM menu_item i
LEFT JOIN menu_item_addon mia ON mia.menu_item_id = i.id
`

func (r *postgresRepo) ListItemsByCategory(ctx context.Context, categoryID int64) ([]domain.MenuItem, error) {
	q := itemColumns + `
WHERE i.category_id = $1
GROUP BY i.id
ORDER BY i.display_order ASC, i.id ASC
`
	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		r.logger.Printf("catalog repo: list items category_id=%d error=%v", categoryID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.MenuItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	q := itemColumns + `
WHERE i.id = $1
GROUP BY i.id
`
	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		r.logger.Printf("catalog repo: get item id=%d error=%v", id, err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	item, err := scanItem(rows)
	if err != nil {
		return nil, err
	}
	return item, rows.Err()
}

func (r *postgresRepo) GetAddon(ctx context.Context, id int64) (*domain.Addon, error) {
	const q = `
SELECT id, name, COALESCE(description, ''), price_delta, is_active
FROM addon
WHERE id = $1
`
	var a domain.Addon
	err := r.pool.QueryRow(ctx, q, id).Scan(&a.ID, &a.Name, &a.Description, &a.PriceDelta, &a.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("catalog repo: get addon id=%d error=%v", id, err)
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) ListAddonsForItem(ctx context.Context, itemID int64) ([]domain.Addon, error) {
	const q = `
SELECT a.id, a.name, COALESCE(a.description, ''), a.price_delta, a.is_active
FROM addon a
JOIN menu_item_addon mia ON mia.addon_id = a.id
WHERE mia.menu_item_id = $1
ORDER BY a.id ASC
`
	rows, err := r.pool.Query(ctx, q, itemID)
	if err != nil {
		r.logger.Printf("catalog repo: list addons item_id=%d error=%v", itemID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Addon
	for rows.Next() {
		var a domain.Addon
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.PriceDelta, &a.Active); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanItem(rows pgx.Rows) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := rows.Scan(
		&item.ID,
		&item.CategoryID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Available,
		&item.ImageURL,
		&item.DisplayOrder,
		&item.AllowedAddonIDs,
	); err != nil {
		return nil, err
	}
	return &item, nil
}
