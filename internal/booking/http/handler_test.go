package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/peershare-backend/internal/booking"
	"github.com/peershare/peershare-backend/internal/identity"
)

type stubService struct {
	booking *booking.Booking
	err     error

	createdBy  int64
	createReq  booking.CreateRequest
	reviewedBy int64
	approved   bool
	listState  string
}

func (s *stubService) Create(_ context.Context, bookerID int64, req booking.CreateRequest) (*booking.Booking, error) {
	s.createdBy = bookerID
	s.createReq = req
	return s.booking, s.err
}

func (s *stubService) GetByID(_ context.Context, _, _ int64) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) Review(_ context.Context, callerID, _ int64, approved bool) (*booking.Booking, error) {
	s.reviewedBy = callerID
	s.approved = approved
	return s.booking, s.err
}

func (s *stubService) ListForBooker(_ context.Context, _ int64, state string) ([]*booking.Booking, error) {
	s.listState = state
	if s.err != nil {
		return nil, s.err
	}
	return []*booking.Booking{s.booking}, nil
}

func (s *stubService) ListForOwner(_ context.Context, _ int64, state string) ([]*booking.Booking, error) {
	s.listState = state
	if s.err != nil {
		return nil, s.err
	}
	return []*booking.Booking{s.booking}, nil
}

func sampleBooking() *booking.Booking {
	return &booking.Booking{
		ID:         1,
		Start:      time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 6, 17, 10, 0, 0, 0, time.UTC),
		Status:     booking.StatusWaiting,
		ItemID:     10,
		ItemName:   "drill",
		BookerID:   2,
		BookerName: "booker",
	}
}

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), identity.Required())
	return r
}

func doJSON(r *gin.Engine, method, path, callerID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if callerID != "" {
		req.Header.Set(identity.Header, callerID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("creates booking", func(t *testing.T) {
		svc := &stubService{booking: sampleBooking()}
		r := newTestRouter(svc)

		rec := doJSON(r, http.MethodPost, "/bookings", "2",
			`{"itemId":10,"start":"2024-06-16T10:00:00Z","end":"2024-06-17T10:00:00Z"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(2), svc.createdBy)
		assert.Equal(t, int64(10), svc.createReq.ItemID)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, "drill", resp.Item.Name)
		assert.Equal(t, "booker", resp.Booker.Name)
	})

	t.Run("missing identity header", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})
		rec := doJSON(r, http.MethodPost, "/bookings", "",
			`{"itemId":10,"start":"2024-06-16T10:00:00Z","end":"2024-06-17T10:00:00Z"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})
		rec := doJSON(r, http.MethodPost, "/bookings", "2", `{"itemId":10}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service errors map to their status", func(t *testing.T) {
		svc := &stubService{err: booking.ErrItemUnavailable}
		r := newTestRouter(svc)
		rec := doJSON(r, http.MethodPost, "/bookings", "2",
			`{"itemId":10,"start":"2024-06-16T10:00:00Z","end":"2024-06-17T10:00:00Z"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		svc.err = booking.ErrItemNotFound
		rec = doJSON(r, http.MethodPost, "/bookings", "2",
			`{"itemId":10,"start":"2024-06-16T10:00:00Z","end":"2024-06-17T10:00:00Z"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetBookingEndpoint(t *testing.T) {
	t.Run("returns booking", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})
		rec := doJSON(r, http.MethodGet, "/bookings/1", "2", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})
		rec := doJSON(r, http.MethodGet, "/bookings/abc", "2", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("stranger is refused", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrNotBookerOrOwner})
		rec := doJSON(r, http.MethodGet, "/bookings/1", "3", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReviewBookingEndpoint(t *testing.T) {
	t.Run("approves booking", func(t *testing.T) {
		b := sampleBooking()
		b.Status = booking.StatusApproved
		svc := &stubService{booking: b}
		r := newTestRouter(svc)

		rec := doJSON(r, http.MethodPatch, "/bookings/1?approved=true", "1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, svc.approved)
		assert.Equal(t, int64(1), svc.reviewedBy)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Status)
	})

	t.Run("missing approved parameter", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})
		rec := doJSON(r, http.MethodPatch, "/bookings/1", "1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListBookingEndpoints(t *testing.T) {
	t.Run("booker listing forwards the state", func(t *testing.T) {
		svc := &stubService{booking: sampleBooking()}
		r := newTestRouter(svc)

		rec := doJSON(r, http.MethodGet, "/bookings?state=WAITING", "2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "WAITING", svc.listState)

		var resp []BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})

	t.Run("owner listing", func(t *testing.T) {
		svc := &stubService{booking: sampleBooking()}
		r := newTestRouter(svc)

		rec := doJSON(r, http.MethodGet, "/bookings/owner", "1", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "", svc.listState)
	})

	t.Run("unknown state yields bad request", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrUnknownState})
		rec := doJSON(r, http.MethodGet, "/bookings?state=bogus", "2", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unknown state filter", resp["error"])
	})

	t.Run("owner without items", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrNoItems})
		rec := doJSON(r, http.MethodGet, "/bookings/owner", "3", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
