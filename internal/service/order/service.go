package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"kitchen-orders/internal/domain"
	orderrepo "kitchen-orders/internal/repository/order"
	"kitchen-orders/internal/service/pricing"
)

type orderRepo interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindByCodeAndPhone(ctx context.Context, code, phone string) (*domain.Order, error)
	List(ctx context.Context, f orderrepo.ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status string) (*domain.Order, error)
}

type slotRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.PickupSlot, error)
	ListActiveByDay(ctx context.Context, dayOfWeek int) ([]domain.PickupSlot, error)
}

type pricer interface {
	Cart(ctx context.Context, lines []domain.CartLine) (*pricing.Quote, error)
	Line(ctx context.Context, line domain.CartLine) (*pricing.LineQuote, error)
}

type pickupValidator interface {
	Validate(ctx context.Context, day *int, slotID *int64, pickupAt *time.Time) error
}

type codeGenerator interface {
	Generate() string
}

// EventPublisher receives order lifecycle notifications. A nil publisher
// disables publishing.
type EventPublisher interface {
	OrderCreated(ctx context.Context, o *domain.Order) error
	OrderStatusChanged(ctx context.Context, o *domain.Order, previous string) error
}

const codeAttempts = 5

// Service assembles and persists orders: validated pickup + priced cart,
// frozen into snapshots in a single transaction.
type Service struct {
	orders  orderRepo
	slots   slotRepo
	pricing pricer
	pickup  pickupValidator
	codes   codeGenerator
	events  EventPublisher
	loc     *time.Location
	logger  *log.Logger
	now     func() time.Time
}

// New wires the order service. events may be nil to disable publishing.
func New(orders orderRepo, slots slotRepo, pricingSvc pricer, pickupSvc pickupValidator,
	codes codeGenerator, events EventPublisher, loc *time.Location, logger *log.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:  orders,
		slots:   slots,
		pricing: pricingSvc,
		pickup:  pickupSvc,
		codes:   codes,
		events:  events,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateInput is the order-creation payload after transport decoding.
type CreateInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
	PickupDay     *int
	PickupSlotID  *int64
	PickupAt      *time.Time
	Lines         []domain.CartLine
}

// Create validates, prices, snapshots and persists an order. Any resolution
// or validation failure aborts before anything is written; the repository
// commits the header and all snapshots atomically.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	// Handlers validate already; re-check here so the service is safe on its own.
	if err := s.pickup.Validate(ctx, in.PickupDay, in.PickupSlotID, in.PickupAt); err != nil {
		return nil, err
	}

	// The slot reference on the order is best effort: validation above is
	// authoritative, so a failed lookup here just leaves the reference empty.
	var slotID *int64
	if in.PickupSlotID != nil {
		if slot, err := s.slots.GetByID(ctx, *in.PickupSlotID); err == nil {
			slotID = &slot.ID
		}
	}

	pickupAt, err := s.resolvePickupAt(ctx, in)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(in.Lines))
	for _, line := range in.Lines {
		lq, err := s.pricing.Line(ctx, line)
		if err != nil {
			return nil, err
		}
		itemID := lq.ItemID
		item := domain.OrderItem{
			MenuItemID:   &itemID,
			ItemName:     lq.ItemName,
			UnitPrice:    lq.BasePrice,
			Quantity:     lq.Quantity,
			LineSubtotal: lq.Subtotal,
		}
		for _, a := range lq.Addons {
			addonID := a.AddonID
			item.Addons = append(item.Addons, domain.OrderItemAddon{
				AddonID:    &addonID,
				AddonName:  a.Name,
				PriceDelta: a.PriceDelta,
			})
		}
		items = append(items, item)
	}

	quote, err := s.pricing.Cart(ctx, in.Lines)
	if err != nil {
		return nil, err
	}

	code, err := s.assignCode(ctx)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Code:          code,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentUnpaid,
		PickupAt:      pickupAt,
		PickupSlotID:  slotID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: domain.NormalizePhone(in.CustomerPhone),
		Notes:         in.Notes,
		Subtotal:      quote.Subtotal,
		Tax:           quote.Tax,
		Total:         quote.Total,
		Items:         items,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persist order %s: %w", code, err)
	}
	s.logger.Printf("order service: created id=%d code=%s total=%s", created.ID, created.Code, created.Total)

	if s.events != nil {
		// The stored order is the source of truth; a publish failure is logged
		// by the publisher and must not fail the creation.
		_ = s.events.OrderCreated(ctx, created)
	}
	return created, nil
}

// FindByCodeAndPhone looks up an order for customer self-serve. The code is
// trimmed and the phone reduced to digits before matching; a miss surfaces as
// domain.ErrNotFound.
func (s *Service) FindByCodeAndPhone(ctx context.Context, code, phone string) (*domain.Order, error) {
	code = strings.TrimSpace(code)
	phone = domain.NormalizePhone(phone)
	if code == "" || phone == "" {
		return nil, domain.ErrNotFound
	}
	return s.orders.FindByCodeAndPhone(ctx, code, phone)
}

// Get fetches one order by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns orders for the admin view, newest first. Filters are trimmed
// and upper-cased; empty means no filter.
func (s *Service) List(ctx context.Context, f orderrepo.ListFilter) ([]domain.Order, error) {
	f.Status = normalizeLabel(f.Status)
	f.PaymentStatus = normalizeLabel(f.PaymentStatus)
	return s.orders.List(ctx, f)
}

// UpdateStatus sets the lifecycle label on an order and publishes a status
// event when a publisher is configured.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	status = normalizeLabel(status)
	if status == "" {
		return nil, domain.Validationf(domain.CodeMissingSelection, "status must not be empty")
	}
	previous, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if s.events != nil && previous.Status != updated.Status {
		_ = s.events.OrderStatusChanged(ctx, updated, previous.Status)
	}
	return updated, nil
}

// UpdatePaymentStatus sets the stored payment label. No payment processing
// happens here.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	status = normalizeLabel(status)
	if status == "" {
		return nil, domain.Validationf(domain.CodeMissingSelection, "payment status must not be empty")
	}
	return s.orders.UpdatePaymentStatus(ctx, id, status)
}

// assignCode tries a handful of random codes against the store, then falls
// back to a timestamp suffix so order creation never fails on collisions
// alone. The store's unique constraint remains the final backstop.
func (s *Service) assignCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := s.codes.Generate()
		exists, err := s.orders.ExistsByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check order code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
	return fmt.Sprintf("%s%d", s.codes.Generate(), s.now().UnixMilli()%1000), nil
}

// resolvePickupAt determines the concrete pickup timestamp to persist:
// an explicit timestamp wins; else the next occurrence of the selected day at
// the earliest active slot's start (noon when the day has no active slot);
// else now.
func (s *Service) resolvePickupAt(ctx context.Context, in CreateInput) (time.Time, error) {
	if in.PickupAt != nil {
		return *in.PickupAt, nil
	}

	now := s.now().In(s.loc)
	if in.PickupDay == nil || *in.PickupDay < 0 || *in.PickupDay > 6 {
		return now, nil
	}
	day := *in.PickupDay

	tod := domain.NewTimeOfDay(12, 0)
	slots, err := s.slots.ListActiveByDay(ctx, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("list slots for day %d: %w", day, err)
	}
	if len(slots) > 0 {
		tod = slots[0].Start
	}

	daysAhead := (day - int(now.Weekday()) + 7) % 7
	date := now.AddDate(0, 0, daysAhead)
	candidate := time.Date(date.Year(), date.Month(), date.Day(), tod.Hour(), tod.Minute(), 0, 0, s.loc)
	if candidate.Before(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate, nil
}

func normalizeLabel(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
