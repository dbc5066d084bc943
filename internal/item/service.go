package item

import (
	"context"
	"strings"
	"time"

	"github.com/peershare/peershare-backend/internal/pkg/clock"
	"github.com/peershare/peershare-backend/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *int64
}

type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// BookingReader exposes the booking lookups this package needs without
// depending on the booking package. Implementations return nil (no error)
// when there is no matching booking.
type BookingReader interface {
	LastApproved(ctx context.Context, itemID int64, now time.Time) (*BookingInfo, error)
	NextApproved(ctx context.Context, itemID int64, now time.Time) (*BookingInfo, error)
	ByBookerAndItem(ctx context.Context, bookerID, itemID int64) (*BookingInfo, error)
}

type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, itemID int64) (*Details, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	SetAvailable(ctx context.Context, itemID int64, available bool) error
	CreateComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error)
}

type service struct {
	repo     Repository
	comments CommentRepository
	users    user.Service
	bookings BookingReader
	cache    SearchCache // optional, nil disables caching
	clock    clock.Clock
}

func NewService(
	repo Repository,
	comments CommentRepository,
	users user.Service,
	bookings BookingReader,
	cache SearchCache,
	clk clock.Clock,
) Service {
	return &service{
		repo:     repo,
		comments: comments,
		users:    users,
		bookings: bookings,
		cache:    cache,
		clock:    clk,
	}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailabilityRequired
	}

	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, ErrOwnerNotFound
	}

	it := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// A caller who is not the owner learns nothing about the item.
	if it.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetByID(ctx context.Context, itemID int64) (*Details, error) {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	last, err := s.bookings.LastApproved(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.NextApproved(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return &Details{
		Item:        *it,
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
	}, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64) ([]*Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}

	// The cache is best effort: errors fall through to the repository.
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, text); err == nil && cached != nil {
			return cached, nil
		}
	}

	items, err := s.repo.Search(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, text, items)
	}
	return items, nil
}

func (s *service) SetAvailable(ctx context.Context, itemID int64, available bool) error {
	return s.repo.SetAvailable(ctx, itemID, available)
}

func (s *service) CreateComment(ctx context.Context, authorID, itemID int64, text string) (*Comment, error) {
	b, err := s.bookings.ByBookerAndItem(ctx, authorID, itemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if b == nil || b.Status != "APPROVED" || !b.End.Before(now) {
		return nil, ErrCommentNotAllowed
	}

	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
