package order

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"kitchen-orders/internal/domain"
	"kitchen-orders/internal/migrate"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `TRUNCATE order_item_addon, order_item, kitchen_order, menu_item_addon, menu_item, menu_category, menu, addon, pickup_slot RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleOrder(code string) *domain.Order {
	itemID := int64(1)
	return &domain.Order{
		Code:          code,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		PickupAt:      time.Date(2026, time.September, 4, 11, 0, 0, 0, time.UTC),
		CustomerName:  "Maria Santos",
		CustomerEmail: "maria@example.com",
		CustomerPhone: "5551234567",
		Notes:         "no onions",
		Subtotal:      dec("23.00"),
		Tax:           dec("1.38"),
		Total:         dec("24.38"),
		Items: []domain.OrderItem{
			{
				MenuItemID:   &itemID,
				ItemName:     "Chicken Adobo",
				UnitPrice:    dec("10.00"),
				Quantity:     2,
				LineSubtotal: dec("23.00"),
				Addons: []domain.OrderItemAddon{
					{AddonName: "Extra Rice", PriceDelta: dec("1.50")},
				},
			},
		},
	}
}

func seedMenuItem(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(ctx, `
		WITH m AS (INSERT INTO menu (name) VALUES ('Weekly') RETURNING id),
		     c AS (INSERT INTO menu_category (menu_id, name) SELECT id, 'Mains' FROM m RETURNING id)
		INSERT INTO menu_item (category_id, name, price) SELECT id, 'Chicken Adobo', 10.00 FROM c
	`)
	if err != nil {
		t.Fatalf("seed menu item: %v", err)
	}
}

func TestPostgres_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)
	seedMenuItem(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleOrder("MKAAAAAA"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Fatalf("store should assign id and created_at: %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Code != "MKAAAAAA" || got.CustomerPhone != "5551234567" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if !got.Total.Equal(dec("24.38")) {
		t.Fatalf("total = %s, want 24.38", got.Total)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got.Items))
	}
	item := got.Items[0]
	if item.ItemName != "Chicken Adobo" || item.Quantity != 2 || !item.UnitPrice.Equal(dec("10.00")) {
		t.Fatalf("unexpected item snapshot: %+v", item)
	}
	if len(item.Addons) != 1 || item.Addons[0].AddonName != "Extra Rice" {
		t.Fatalf("unexpected addon snapshot: %+v", item.Addons)
	}
}

func TestPostgres_SnapshotSurvivesCatalogEdit(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)
	seedMenuItem(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	created, err := repo.Create(ctx, sampleOrder("MKBBBBBB"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := pool.Exec(ctx, `UPDATE menu_item SET price = 99.00, name = 'Renamed'`); err != nil {
		t.Fatalf("update catalog: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Items[0].ItemName != "Chicken Adobo" || !got.Items[0].UnitPrice.Equal(dec("10.00")) {
		t.Fatalf("snapshot changed after catalog edit: %+v", got.Items[0])
	}

	// Deleting the catalog row nulls the soft reference but keeps the snapshot.
	if _, err := pool.Exec(ctx, `DELETE FROM menu_item`); err != nil {
		t.Fatalf("delete catalog: %v", err)
	}
	got, err = repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if got.Items[0].MenuItemID != nil {
		t.Fatalf("soft reference should be nulled, got %v", *got.Items[0].MenuItemID)
	}
	if got.Items[0].ItemName != "Chicken Adobo" {
		t.Fatalf("snapshot lost after catalog delete: %+v", got.Items[0])
	}
}

func TestPostgres_LookupAndCodes(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)
	seedMenuItem(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if _, err := repo.Create(ctx, sampleOrder("MKCCCCCC")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err := repo.ExistsByCode(ctx, "MKCCCCCC")
	if err != nil {
		t.Fatalf("ExistsByCode: %v", err)
	}
	if !exists {
		t.Fatal("expected code to exist")
	}
	exists, err = repo.ExistsByCode(ctx, "MKZZZZZZ")
	if err != nil {
		t.Fatalf("ExistsByCode: %v", err)
	}
	if exists {
		t.Fatal("unexpected code hit")
	}

	got, err := repo.FindByCodeAndPhone(ctx, "MKCCCCCC", "5551234567")
	if err != nil {
		t.Fatalf("FindByCodeAndPhone: %v", err)
	}
	if got.Code != "MKCCCCCC" {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := repo.FindByCodeAndPhone(ctx, "MKCCCCCC", "0000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for wrong phone, got %v", err)
	}
}

func TestPostgres_ListAndUpdates(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)
	seedMenuItem(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	first, err := repo.Create(ctx, sampleOrder("MKDDDDDD"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, sampleOrder("MKEEEEEE")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(all))
	}

	updated, err := repo.UpdateStatus(ctx, first.ID, "READY")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != "READY" {
		t.Fatalf("status = %q", updated.Status)
	}

	ready, err := repo.List(ctx, ListFilter{Status: "READY"})
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(ready) != 1 || ready[0].ID != first.ID {
		t.Fatalf("unexpected filtered result: %+v", ready)
	}

	paid, err := repo.UpdatePaymentStatus(ctx, first.ID, "PAID")
	if err != nil {
		t.Fatalf("UpdatePaymentStatus: %v", err)
	}
	if paid.PaymentStatus != "PAID" {
		t.Fatalf("payment status = %q", paid.PaymentStatus)
	}

	if _, err := repo.UpdateStatus(ctx, 9999, "READY"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
