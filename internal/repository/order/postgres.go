package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

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

func (r *postgresRepo) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const headerQ = `
INSERT INTO kitchen_order
    (order_code, status, payment_status, pickup_at, pickup_slot_id,
     customer_name, customer_email, customer_phone, notes, subtotal, tax_amount, total_amount)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, $12)
RETURNING id, created_at
`
	var orderID int64
	if err := tx.QueryRow(ctx, headerQ,
		o.Code,
		o.Status,
		o.PaymentStatus,
		o.PickupAt,
		o.PickupSlotID,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		o.Notes,
		o.Subtotal,
		o.Tax,
		o.Total,
	).Scan(&orderID, &o.CreatedAt); err != nil {
		r.logger.Printf("order repo: insert header code=%s error=%v", o.Code, err)
		return nil, err
	}

	const itemQ = `
INSERT INTO order_item (order_id, menu_item_id, item_name, unit_price, quantity, line_subtotal)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	const addonQ = `
INSERT INTO order_item_addon (order_item_id, addon_id, addon_name, price_delta)
VALUES ($1, $2, $3, $4)
`
	for i := range o.Items {
		item := &o.Items[i]
		if err := tx.QueryRow(ctx, itemQ,
			orderID,
			item.MenuItemID,
			item.ItemName,
			item.UnitPrice,
			item.Quantity,
			item.LineSubtotal,
		).Scan(&item.ID); err != nil {
			r.logger.Printf("order repo: insert item order_id=%d error=%v", orderID, err)
			return nil, err
		}
		item.OrderID = orderID
		for j := range item.Addons {
			addon := &item.Addons[j]
			if _, err := tx.Exec(ctx, addonQ, item.ID, addon.AddonID, addon.AddonName, addon.PriceDelta); err != nil {
				r.logger.Printf("order repo: insert item addon order_id=%d error=%v", orderID, err)
				return nil, err
			}
			addon.OrderItemID = item.ID
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	o.ID = orderID
	r.logger.Printf("order repo: created id=%d code=%s items=%d", orderID, o.Code, len(o.Items))
	return o, nil
}

const orderColumns = `
SELECT id, order_code, status, payment_status, pickup_at, pickup_slot_id,
       customer_name, customer_email, customer_phone, COALESCE(notes, ''),
       subtotal, tax_amount, total_amount, created_at
FROM kitchen_order
`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return r.fetchOrder(ctx, orderColumns+`WHERE id = $1`, id)
}

func (r *postgresRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM kitchen_order WHERE order_code = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, code).Scan(&exists); err != nil {
		r.logger.Printf("order repo: exists code=%s error=%v", code, err)
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) FindByCodeAndPhone(ctx context.Context, code, phone string) (*domain.Order, error) {
	return r.fetchOrder(ctx, orderColumns+`WHERE order_code = $1 AND customer_phone = $2`, code, phone)
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) ([]domain.Order, error) {
	var conds []string
	var args []interface{}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.PaymentStatus != "" {
		args = append(args, f.PaymentStatus)
		conds = append(conds, fmt.Sprintf("payment_status = $%d", len(args)))
	}

	q := orderColumns
	if len(conds) > 0 {
		q += "WHERE " + strings.Join(conds, " AND ") + "\n"
	}
	q += "ORDER BY created_at DESC\n"
	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	q += fmt.Sprintf("LIMIT $%d", len(args))
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	return r.updateField(ctx, "status", id, status)
}

func (r *postgresRepo) UpdatePaymentStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	return r.updateField(ctx, "payment_status", id, status)
}

func (r *postgresRepo) updateField(ctx context.Context, column string, id int64, value string) (*domain.Order, error) {
	q := fmt.Sprintf(`UPDATE kitchen_order SET %s = $1 WHERE id = $2 RETURNING id`, column)
	var updated int64
	if err := r.pool.QueryRow(ctx, q, value, id).Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("order repo: update %s id=%d error=%v", column, id, err)
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, args ...interface{}) (*domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	o, err := scanOrder(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	items, err := r.fetchItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *postgresRepo) fetchItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const itemsQ = `
SELECT id, order_id, menu_item_id, item_name, unit_price, quantity, line_subtotal
FROM order_item
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, itemsQ, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.ItemName, &it.UnitPrice, &it.Quantity, &it.LineSubtotal); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const addonsQ = `
SELECT id, order_item_id, addon_id, addon_name, price_delta
FROM order_item_addon
WHERE order_item_id = $1
ORDER BY id ASC
`
	for i := range items {
		addonRows, err := r.pool.Query(ctx, addonsQ, items[i].ID)
		if err != nil {
			return nil, err
		}
		for addonRows.Next() {
			var a domain.OrderItemAddon
			if err := addonRows.Scan(&a.ID, &a.OrderItemID, &a.AddonID, &a.AddonName, &a.PriceDelta); err != nil {
				addonRows.Close()
				return nil, err
			}
			items[i].Addons = append(items[i].Addons, a)
		}
		if err := addonRows.Err(); err != nil {
			addonRows.Close()
			return nil, err
		}
		addonRows.Close()
	}
	return items, nil
}

func scanOrder(rows pgx.Rows) (*domain.Order, error) {
	var o domain.Order
	if err := rows.Scan(
		&o.ID,
		&o.Code,
		&o.Status,
		&o.PaymentStatus,
		&o.PickupAt,
		&o.PickupSlotID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.Notes,
		&o.Subtotal,
		&o.Tax,
		&o.Total,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
