package itemrequest

import (
	"net/http"
	"time"

	"github.com/peershare/peershare-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrRequesterNotFound   = apperror.New(http.StatusNotFound, "requester not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is a wish for an item that is not listed yet. Items created in
// answer to it carry the request's id.
type ItemRequest struct {
	ID          int64
	Description string
	RequesterID int64
	Created     time.Time
}

// Answer is an item offered in response to a request.
type Answer struct {
	ItemID  int64
	Name    string
	OwnerID int64
}

// Details is a request together with the items answering it.
type Details struct {
	ItemRequest
	Items []Answer
}
