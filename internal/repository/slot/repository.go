package slot

import (
	"context"

	"kitchen-orders/internal/domain"
)

// Repository reads pickup slot definitions. The ordering engine never writes
// slots; administrative tooling owns mutations.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.PickupSlot, error)
	ListActive(ctx context.Context) ([]domain.PickupSlot, error)
	// ListActiveByDay returns active slots for a day (0=Sun..6=Sat) sorted by
	// start time ascending.
	ListActiveByDay(ctx context.Context, dayOfWeek int) ([]domain.PickupSlot, error)
}
