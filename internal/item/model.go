package item

import (
	"net/http"
	"time"

	"github.com/peershare/peershare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "item not found")
	ErrOwnerNotFound        = apperror.New(http.StatusNotFound, "owner not found")
	ErrNameRequired         = apperror.New(http.StatusBadRequest, "name is required")
	ErrDescriptionRequired  = apperror.New(http.StatusBadRequest, "description is required")
	ErrAvailabilityRequired = apperror.New(http.StatusBadRequest, "available flag is required")
	ErrCommentNotAllowed    = apperror.New(http.StatusBadRequest, "no finished booking for this item")
)

// Item is a thing a user offers for sharing. RequestID links the item to the
// item request it was created in answer to, when there is one.
type Item struct {
	ID          int64
	Name        string
	Description string
	Available   bool
	OwnerID     int64
	RequestID   *int64
}

// Comment is feedback left by a booker after a completed booking.
type Comment struct {
	ID         int64
	Text       string
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Created    time.Time
}

// BookingInfo is the slice of a booking this package needs for the item view
// and for comment eligibility.
type BookingInfo struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
	Status   string
}

// Details is the single-item view: the item plus its booking timeline
// and comments.
type Details struct {
	Item
	LastBooking *BookingInfo
	NextBooking *BookingInfo
	Comments    []*Comment
}
