package pickup

import (
	"context"
	"fmt"
	"time"

	"kitchen-orders/internal/domain"
)

type slotRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.PickupSlot, error)
	ListActive(ctx context.Context) ([]domain.PickupSlot, error)
	ListActiveByDay(ctx context.Context, dayOfWeek int) ([]domain.PickupSlot, error)
}

// Service validates customer pickup selections against configured slots.
// Day-of-week convention is 0=Sun..6=Sat, matching time.Weekday.
type Service struct {
	slots                slotRepo
	requireFutureMinutes int
	strictDayMatch       bool
	loc                  *time.Location
	now                  func() time.Time
}

// New builds a validator. requireFutureMinutes is the minimum lead time in
// minutes (0 allows "now"); loc is the zone used to interpret pickup times.
func New(slots slotRepo, requireFutureMinutes int, strictDayMatch bool, loc *time.Location) *Service {
	if requireFutureMinutes < 0 {
		requireFutureMinutes = 0
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		slots:                slots,
		requireFutureMinutes: requireFutureMinutes,
		strictDayMatch:       strictDayMatch,
		loc:                  loc,
		now:                  time.Now,
	}
}

// Validate checks a requested pickup. All arguments are optional; checks run
// in a fixed order and the first failure wins.
func (s *Service) Validate(ctx context.Context, day *int, slotID *int64, pickupAt *time.Time) error {
	var chosen *domain.PickupSlot
	if slotID != nil {
		var err error
		chosen, err = s.slots.GetByID(ctx, *slotID)
		if err != nil {
			return fmt.Errorf("pickup slot %d: %w", *slotID, err)
		}
		if !chosen.Active {
			return domain.Validationf(domain.CodeInactiveSlot, "pickup slot %d is not active", chosen.ID)
		}
	}

	if pickupAt != nil && s.requireFutureMinutes > 0 {
		earliest := s.now().In(s.loc).Add(time.Duration(s.requireFutureMinutes) * time.Minute)
		if pickupAt.In(s.loc).Before(earliest) {
			return domain.Validationf(domain.CodeTooSoon,
				"pickup time must be at least %d minutes from now", s.requireFutureMinutes)
		}
	}

	var effectiveDay *int
	switch {
	case day != nil:
		effectiveDay = day
	case pickupAt != nil:
		d := int(pickupAt.In(s.loc).Weekday())
		effectiveDay = &d
	}
	if effectiveDay != nil && (*effectiveDay < 0 || *effectiveDay > 6) {
		return domain.Validationf(domain.CodeOutOfRange, "pickup day must be between 0 (Sun) and 6 (Sat)")
	}

	if s.strictDayMatch && pickupAt != nil && effectiveDay != nil {
		if int(pickupAt.In(s.loc).Weekday()) != *effectiveDay {
			return domain.Validationf(domain.CodeDayMismatch, "pickup date does not match the selected pickup day")
		}
	}

	if chosen != nil {
		if s.strictDayMatch && effectiveDay != nil && chosen.DayOfWeek != *effectiveDay {
			return domain.Validationf(domain.CodeSlotDayMismatch, "chosen slot is not available on the selected day")
		}
		if pickupAt != nil && !s.withinSlot(chosen, *pickupAt) {
			return domain.Validationf(domain.CodeOutsideWindow, "pickup time is outside the chosen slot window")
		}
		return nil
	}

	if effectiveDay == nil {
		return domain.Validationf(domain.CodeMissingSelection, "either a pickup day or a pickup slot must be provided")
	}
	active, err := s.slots.ListActiveByDay(ctx, *effectiveDay)
	if err != nil {
		return fmt.Errorf("list slots for day %d: %w", *effectiveDay, err)
	}
	if len(active) == 0 {
		return domain.Validationf(domain.CodeNoSlotsAvailable, "no active pickup slots for the selected day")
	}
	if pickupAt != nil {
		for i := range active {
			if s.withinSlot(&active[i], *pickupAt) {
				return nil
			}
		}
		return domain.Validationf(domain.CodeOutsideWindow, "pickup time does not fit any active slot on the selected day")
	}
	return nil
}

// ActiveSlots lists all active slots sorted by day then start time.
func (s *Service) ActiveSlots(ctx context.Context) ([]domain.PickupSlot, error) {
	return s.slots.ListActive(ctx)
}

// ActiveSlotsForDay lists active slots for one day (0=Sun..6=Sat).
func (s *Service) ActiveSlotsForDay(ctx context.Context, dayOfWeek int) ([]domain.PickupSlot, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, domain.Validationf(domain.CodeOutOfRange, "day must be between 0 (Sun) and 6 (Sat)")
	}
	return s.slots.ListActiveByDay(ctx, dayOfWeek)
}

// withinSlot checks the [start, end) window; with strict day matching the
// instant's weekday must also equal the slot's day.
func (s *Service) withinSlot(slot *domain.PickupSlot, at time.Time) bool {
	local := at.In(s.loc)
	if s.strictDayMatch && int(local.Weekday()) != slot.DayOfWeek {
		return false
	}
	return slot.Contains(domain.TimeOfDayFrom(local))
}
