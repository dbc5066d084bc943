package http

import (
	"time"

	"github.com/peershare/peershare-backend/internal/itemrequest"
)

type RequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requesterId"`
	Created     time.Time `json:"created"`
}

func NewRequestResponse(r *itemrequest.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:          r.ID,
		Description: r.Description,
		RequesterID: r.RequesterID,
		Created:     r.Created,
	}
}

type AnswerResponse struct {
	ItemID  int64  `json:"itemId"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type RequestDetailsResponse struct {
	RequestResponse
	Items []AnswerResponse `json:"items"`
}

func NewRequestDetailsResponse(d *itemrequest.Details) RequestDetailsResponse {
	items := make([]AnswerResponse, len(d.Items))
	for i, a := range d.Items {
		items[i] = AnswerResponse{ItemID: a.ItemID, Name: a.Name, OwnerID: a.OwnerID}
	}
	return RequestDetailsResponse{
		RequestResponse: NewRequestResponse(&d.ItemRequest),
		Items:           items,
	}
}

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}
