package order

import (
	"context"

	"kitchen-orders/internal/domain"
)

// ListFilter narrows admin order listings. Empty strings mean "no filter".
type ListFilter struct {
	Status        string
	PaymentStatus string
	Limit         int
	Offset        int
}

// Repository persists and queries orders. Create writes the order header and
// all item/addon snapshots in one transaction; created_at is assigned by the
// store.
type Repository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindByCodeAndPhone(ctx context.Context, code, phone string) (*domain.Order, error)
	List(ctx context.Context, f ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
}
