package app

import (
	"context"
	"errors"
	"time"

	"github.com/peershare/peershare-backend/internal/booking"
	"github.com/peershare/peershare-backend/internal/item"
	"github.com/peershare/peershare-backend/internal/user"
)

// The booking engine and the item service each declare the narrow interfaces
// they depend on. These adapters bind those interfaces to the neighbouring
// repositories and translate not-found sentinels across package boundaries.

type itemDirectory struct {
	repo item.Repository
}

func (d itemDirectory) GetByID(ctx context.Context, id int64) (*booking.ItemRef, error) {
	it, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			return nil, booking.ErrItemNotFound
		}
		return nil, err
	}
	return &booking.ItemRef{
		ID:        it.ID,
		OwnerID:   it.OwnerID,
		Name:      it.Name,
		Available: it.Available,
	}, nil
}

func (d itemDirectory) ListByOwner(ctx context.Context, ownerID int64) ([]booking.ItemRef, error) {
	items, err := d.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	refs := make([]booking.ItemRef, len(items))
	for i, it := range items {
		refs[i] = booking.ItemRef{
			ID:        it.ID,
			OwnerID:   it.OwnerID,
			Name:      it.Name,
			Available: it.Available,
		}
	}
	return refs, nil
}

func (d itemDirectory) SetAvailable(ctx context.Context, id int64, available bool) error {
	return d.repo.SetAvailable(ctx, id, available)
}

type userDirectory struct {
	repo user.Repository
}

func (d userDirectory) GetByID(ctx context.Context, id int64) (*booking.UserRef, error) {
	u, err := d.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, booking.ErrUserNotFound
		}
		return nil, err
	}
	return &booking.UserRef{ID: u.ID, Name: u.Name}, nil
}

type bookingReader struct {
	repo booking.Repository
}

func (r bookingReader) LastApproved(ctx context.Context, itemID int64, now time.Time) (*item.BookingInfo, error) {
	b, err := r.repo.LastApproved(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toBookingInfo(b), nil
}

func (r bookingReader) NextApproved(ctx context.Context, itemID int64, now time.Time) (*item.BookingInfo, error) {
	b, err := r.repo.NextApproved(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return toBookingInfo(b), nil
}

func (r bookingReader) ByBookerAndItem(ctx context.Context, bookerID, itemID int64) (*item.BookingInfo, error) {
	b, err := r.repo.ByBookerAndItem(ctx, bookerID, itemID)
	if err != nil {
		return nil, err
	}
	return toBookingInfo(b), nil
}

func toBookingInfo(b *booking.Booking) *item.BookingInfo {
	if b == nil {
		return nil
	}
	return &item.BookingInfo{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    b.Start,
		End:      b.End,
		Status:   string(b.Status),
	}
}
