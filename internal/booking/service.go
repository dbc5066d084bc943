package booking

import (
	"context"
	"time"

	"github.com/peershare/peershare-backend/internal/pkg/clock"
)

// ItemRef is the slice of an item the engine needs.
type ItemRef struct {
	ID        int64
	OwnerID   int64
	Name      string
	Available bool
}

// UserRef is the slice of a user the engine needs.
type UserRef struct {
	ID   int64
	Name string
}

// ItemDirectory is the engine's read-mostly view of the item catalog.
// Implementations report a missing item as ErrItemNotFound.
type ItemDirectory interface {
	GetByID(ctx context.Context, id int64) (*ItemRef, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]ItemRef, error)
	SetAvailable(ctx context.Context, id int64, available bool) error
}

// UserDirectory resolves users. Implementations report a missing user as
// ErrUserNotFound.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*UserRef, error)
}

type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

type Service interface {
	Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, callerID, bookingID int64) (*Booking, error)
	Review(ctx context.Context, callerID, bookingID int64, approved bool) (*Booking, error)
	ListForBooker(ctx context.Context, bookerID int64, state string) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID int64, state string) ([]*Booking, error)
}

type service struct {
	repo  Repository
	items ItemDirectory
	users UserDirectory
	clock clock.Clock
}

func NewService(repo Repository, items ItemDirectory, users UserDirectory, clk clock.Clock) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
		clock: clk,
	}
}

func (s *service) Create(ctx context.Context, bookerID int64, req CreateRequest) (*Booking, error) {
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available {
		return nil, ErrItemUnavailable
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTimeRange(req.Start, req.End); err != nil {
		return nil, err
	}

	b := &Booking{
		Start:      req.Start,
		End:        req.End,
		Status:     StatusWaiting,
		ItemID:     it.ID,
		ItemName:   it.Name,
		BookerID:   booker.ID,
		BookerName: booker.Name,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, callerID, bookingID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if callerID != b.BookerID && callerID != it.OwnerID {
		return nil, ErrNotBookerOrOwner
	}
	return b, nil
}

func (s *service) Review(ctx context.Context, callerID, bookingID int64, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}
	if callerID != it.OwnerID {
		return nil, ErrNotItemOwner
	}

	if approved {
		b.Status = StatusApproved
		if err := s.items.SetAvailable(ctx, b.ItemID, false); err != nil {
			return nil, err
		}
	} else {
		b.Status = StatusRejected
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID int64, state string) ([]*Booking, error) {
	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	// One reading per call keeps the PAST/FUTURE split consistent across rows.
	now := s.clock.Now()

	var bookings []*Booking
	switch st {
	case StateAll:
		bookings, err = s.repo.ListByBooker(ctx, bookerID)
	case StateCurrent:
		bookings, err = s.repo.ListByBookerAndStatus(ctx, bookerID, StatusApproved)
	case StatePast:
		bookings, err = s.repo.ListByBookerEndBefore(ctx, bookerID, now)
	case StateFuture:
		bookings, err = s.repo.ListByBookerStartAfter(ctx, bookerID, now)
	case StateWaiting:
		bookings, err = s.repo.ListByBookerAndStatus(ctx, bookerID, StatusWaiting)
	case StateRejected:
		bookings, err = s.repo.ListByBookerAndStatus(ctx, bookerID, StatusRejected)
	}
	if err != nil {
		return nil, err
	}
	return nonNil(bookings), nil
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state string) ([]*Booking, error) {
	// The ownership check comes first: an item-less owner is refused before
	// the state filter is even parsed.
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	st, err := ParseState(state)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int64, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}

	now := s.clock.Now()

	var bookings []*Booking
	switch st {
	case StateAll:
		bookings, err = s.repo.ListByItems(ctx, itemIDs)
	case StateCurrent:
		bookings, err = s.repo.ListByItemsAndStatus(ctx, itemIDs, StatusApproved)
	// TODO: PAST and FUTURE filter by the owner's id as booker instead of by
	// the owner's item set; confirm the intended scope with product before
	// changing it.
	case StatePast:
		bookings, err = s.repo.ListByBookerEndBefore(ctx, ownerID, now)
	case StateFuture:
		bookings, err = s.repo.ListByBookerStartAfter(ctx, ownerID, now)
	case StateWaiting:
		bookings, err = s.repo.ListByItemsAndStatus(ctx, itemIDs, StatusWaiting)
	case StateRejected:
		bookings, err = s.repo.ListByItemsAndStatus(ctx, itemIDs, StatusRejected)
	}
	if err != nil {
		return nil, err
	}
	return nonNil(bookings), nil
}

// checkTimeRange enforces start < end and that the start's calendar date is
// not before today. A start earlier today is allowed.
func (s *service) checkTimeRange(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidTimeRange
	}
	if dateOf(start).Before(dateOf(s.clock.Now())) {
		return ErrStartInPast
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nonNil(bookings []*Booking) []*Booking {
	if bookings == nil {
		return []*Booking{}
	}
	return bookings
}
