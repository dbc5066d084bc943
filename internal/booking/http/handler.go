package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/peershare/peershare-backend/internal/booking"
	"github.com/peershare/peershare-backend/internal/identity"
	"github.com/peershare/peershare-backend/internal/metrics"
	"github.com/peershare/peershare-backend/internal/pkg/request"
	"github.com/peershare/peershare-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), identity.UserID(c), booking.CreateRequest{
		ItemID: body.ItemID,
		Start:  body.Start,
		End:    body.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	metrics.IncBookingCreated()
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), identity.UserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Review(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved query parameter is required"})
		return
	}

	b, err := h.service.Review(c.Request.Context(), identity.UserID(c), uri.ID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	if approved {
		metrics.IncBookingReviewed("approved")
	} else {
		metrics.IncBookingReviewed("rejected")
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListForBooker(c *gin.Context) {
	bookings, err := h.service.ListForBooker(c.Request.Context(), identity.UserID(c), c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *Handler) ListForOwner(c *gin.Context) {
	bookings, err := h.service.ListForOwner(c.Request.Context(), identity.UserID(c), c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func toBookingResponses(bookings []*booking.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = NewBookingResponse(b)
	}
	return out
}
