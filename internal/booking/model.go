package booking

import (
	"net/http"
	"time"

	"github.com/peershare/peershare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user not found")
	ErrItemUnavailable  = apperror.New(http.StatusBadRequest, "item is not available")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrStartInPast      = apperror.New(http.StatusBadRequest, "start date cannot be in the past")
	ErrNotBookerOrOwner = apperror.New(http.StatusBadRequest, "wrong booker or owner id")
	ErrNotItemOwner     = apperror.New(http.StatusBadRequest, "caller is not the item owner")
	ErrNoItems          = apperror.New(http.StatusBadRequest, "user owns no items")
)

// Status is the persisted booking lifecycle value.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a reservation of an item by a user for a time window.
// ItemName and BookerName are populated by the repository's joins.
type Booking struct {
	ID         int64
	Start      time.Time
	End        time.Time
	Status     Status
	ItemID     int64
	ItemName   string
	BookerID   int64
	BookerName string
}
