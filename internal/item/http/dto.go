package http

import (
	"time"

	"github.com/peershare/peershare-backend/internal/item"
)

// ItemTag holds minimal item info for embedding in other responses.
type ItemTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

func NewItemResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		RequestID:   it.RequestID,
	}
}

type BookingBrief struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func newBookingBrief(b *item.BookingInfo) *BookingBrief {
	if b == nil {
		return nil
	}
	return &BookingBrief{ID: b.ID, BookerID: b.BookerID, Start: b.Start, End: b.End}
}

type ItemDetailsResponse struct {
	ItemResponse
	LastBooking *BookingBrief     `json:"lastBooking"`
	NextBooking *BookingBrief     `json:"nextBooking"`
	Comments    []CommentResponse `json:"comments"`
}

func NewItemDetailsResponse(d *item.Details) ItemDetailsResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = NewCommentResponse(c)
	}
	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		LastBooking:  newBookingBrief(d.LastBooking),
		NextBooking:  newBookingBrief(d.NextBooking),
		Comments:     comments,
	}
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    c.Created,
	}
}

type CreateItemBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentBody struct {
	Text string `json:"text" binding:"required"`
}
