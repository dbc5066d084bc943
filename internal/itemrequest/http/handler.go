package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peershare/peershare-backend/internal/identity"
	"github.com/peershare/peershare-backend/internal/itemrequest"
	"github.com/peershare/peershare-backend/internal/pkg/request"
	"github.com/peershare/peershare-backend/internal/pkg/response"
)

type Handler struct {
	service itemrequest.Service
}

func NewHandler(service itemrequest.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req, err := h.service.Create(c.Request.Context(), identity.UserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRequestResponse(req))
}

func (h *Handler) ListAll(c *gin.Context) {
	requests, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestResponse, len(requests))
	for i, r := range requests {
		items[i] = NewRequestResponse(r)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) ListOwn(c *gin.Context) {
	details, err := h.service.ListByRequester(c.Request.Context(), identity.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RequestDetailsResponse, len(details))
	for i, d := range details {
		items[i] = NewRequestDetailsResponse(d)
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRequestDetailsResponse(d))
}
