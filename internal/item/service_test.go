package item

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/peershare-backend/internal/pkg/clock"
	"github.com/peershare/peershare-backend/internal/user"
)

type fakeRepo struct {
	items       map[int64]*Item
	nextID      int64
	searchCalls int
}

func newFakeItemRepo() *fakeRepo {
	return &fakeRepo{items: make(map[int64]*Item), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, it *Item) error {
	it.ID = f.nextID
	f.nextID++
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *it
	return &copied, nil
}

func (f *fakeRepo) Update(_ context.Context, it *Item) error {
	if _, ok := f.items[it.ID]; !ok {
		return ErrNotFound
	}
	stored := *it
	f.items[it.ID] = &stored
	return nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID int64) ([]*Item, error) {
	var out []*Item
	for _, it := range f.items {
		if it.OwnerID == ownerID {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) Search(_ context.Context, text string) ([]*Item, error) {
	f.searchCalls++
	needle := strings.ToLower(text)
	var out []*Item
	for _, it := range f.items {
		if !it.Available {
			continue
		}
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle) {
			copied := *it
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeRepo) SetAvailable(_ context.Context, id int64, available bool) error {
	it, ok := f.items[id]
	if !ok {
		return ErrNotFound
	}
	it.Available = available
	return nil
}

type fakeComments struct {
	comments []*Comment
	nextID   int64
}

func (f *fakeComments) Create(_ context.Context, c *Comment) error {
	f.nextID++
	c.ID = f.nextID
	c.Created = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	stored := *c
	f.comments = append(f.comments, &stored)
	return nil
}

func (f *fakeComments) ListByItem(_ context.Context, itemID int64) ([]*Comment, error) {
	out := []*Comment{}
	for _, c := range f.comments {
		if c.ItemID == itemID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeUsers struct {
	users map[int64]*user.User
}

func (f *fakeUsers) Create(context.Context, user.CreateRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(context.Context) ([]*user.User, error) { panic("not used") }

func (f *fakeUsers) Update(context.Context, int64, user.UpdateRequest) (*user.User, error) {
	panic("not used")
}

func (f *fakeUsers) Delete(context.Context, int64) error { panic("not used") }

type fakeBookings struct {
	last   *BookingInfo
	next   *BookingInfo
	byPair map[[2]int64]*BookingInfo
}

func (f *fakeBookings) LastApproved(context.Context, int64, time.Time) (*BookingInfo, error) {
	return f.last, nil
}

func (f *fakeBookings) NextApproved(context.Context, int64, time.Time) (*BookingInfo, error) {
	return f.next, nil
}

func (f *fakeBookings) ByBookerAndItem(_ context.Context, bookerID, itemID int64) (*BookingInfo, error) {
	return f.byPair[[2]int64{bookerID, itemID}], nil
}

type memoryCache struct {
	entries map[string][]*Item
	sets    int
}

func (m *memoryCache) Get(_ context.Context, text string) ([]*Item, error) {
	return m.entries[text], nil
}

func (m *memoryCache) Set(_ context.Context, text string, items []*Item) error {
	m.sets++
	m.entries[text] = items
	return nil
}

var itemTestNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type itemFixture struct {
	repo     *fakeRepo
	comments *fakeComments
	users    *fakeUsers
	bookings *fakeBookings
	cache    *memoryCache
	service  Service
}

func newItemFixture(withCache bool) *itemFixture {
	f := &itemFixture{
		repo:     newFakeItemRepo(),
		comments: &fakeComments{},
		users: &fakeUsers{users: map[int64]*user.User{
			1: {ID: 1, Name: "owner", Email: "owner@example.com"},
			2: {ID: 2, Name: "booker", Email: "booker@example.com"},
		}},
		bookings: &fakeBookings{byPair: make(map[[2]int64]*BookingInfo)},
	}
	var cache SearchCache
	if withCache {
		f.cache = &memoryCache{entries: make(map[string][]*Item)}
		cache = f.cache
	}
	f.service = NewService(f.repo, f.comments, f.users, f.bookings, cache, clock.Fixed(itemTestNow))
	return f
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item", func(t *testing.T) {
		f := newItemFixture(false)
		it, err := f.service.Create(ctx, 1, CreateRequest{
			Name:        "drill",
			Description: "cordless drill",
			Available:   boolPtr(true),
		})
		require.NoError(t, err)
		assert.NotZero(t, it.ID)
		assert.Equal(t, int64(1), it.OwnerID)
		assert.True(t, it.Available)
	})

	t.Run("blank name fails", func(t *testing.T) {
		f := newItemFixture(false)
		_, err := f.service.Create(ctx, 1, CreateRequest{
			Name:        "   ",
			Description: "desc",
			Available:   boolPtr(true),
		})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("blank description fails", func(t *testing.T) {
		f := newItemFixture(false)
		_, err := f.service.Create(ctx, 1, CreateRequest{
			Name:      "drill",
			Available: boolPtr(true),
		})
		assert.ErrorIs(t, err, ErrDescriptionRequired)
	})

	t.Run("missing availability fails", func(t *testing.T) {
		f := newItemFixture(false)
		_, err := f.service.Create(ctx, 1, CreateRequest{
			Name:        "drill",
			Description: "desc",
		})
		assert.ErrorIs(t, err, ErrAvailabilityRequired)
	})

	t.Run("unknown owner fails", func(t *testing.T) {
		f := newItemFixture(false)
		_, err := f.service.Create(ctx, 99, CreateRequest{
			Name:        "drill",
			Description: "desc",
			Available:   boolPtr(true),
		})
		assert.ErrorIs(t, err, ErrOwnerNotFound)
	})
}

func TestUpdateItem(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*itemFixture, *Item) {
		f := newItemFixture(false)
		it, err := f.service.Create(ctx, 1, CreateRequest{
			Name:        "drill",
			Description: "cordless drill",
			Available:   boolPtr(true),
		})
		require.NoError(t, err)
		return f, it
	}

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		f, it := seed(t)
		updated, err := f.service.Update(ctx, 1, it.ID, UpdateRequest{
			Available: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "drill", updated.Name)
		assert.Equal(t, "cordless drill", updated.Description)
		assert.False(t, updated.Available)
	})

	t.Run("rename", func(t *testing.T) {
		f, it := seed(t)
		updated, err := f.service.Update(ctx, 1, it.ID, UpdateRequest{
			Name: strPtr("hammer drill"),
		})
		require.NoError(t, err)
		assert.Equal(t, "hammer drill", updated.Name)
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		f, it := seed(t)
		_, err := f.service.Update(ctx, 2, it.ID, UpdateRequest{
			Name: strPtr("stolen"),
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing item", func(t *testing.T) {
		f, _ := seed(t)
		_, err := f.service.Update(ctx, 1, 999, UpdateRequest{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGetItemDetails(t *testing.T) {
	ctx := context.Background()
	f := newItemFixture(false)

	it, err := f.service.Create(ctx, 1, CreateRequest{
		Name:        "drill",
		Description: "cordless drill",
		Available:   boolPtr(true),
	})
	require.NoError(t, err)

	f.bookings.last = &BookingInfo{ID: 5, BookerID: 2, Status: "APPROVED"}
	f.bookings.next = &BookingInfo{ID: 6, BookerID: 2, Status: "APPROVED"}

	details, err := f.service.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, details.Item.ID)
	require.NotNil(t, details.LastBooking)
	assert.Equal(t, int64(5), details.LastBooking.ID)
	require.NotNil(t, details.NextBooking)
	assert.Equal(t, int64(6), details.NextBooking.ID)
	assert.Empty(t, details.Comments)
}

func TestSearchItems(t *testing.T) {
	ctx := context.Background()

	t.Run("blank text yields empty list without querying", func(t *testing.T) {
		f := newItemFixture(false)
		items, err := f.service.Search(ctx, "   ")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		assert.Zero(t, f.repo.searchCalls)
	})

	t.Run("hits the repository and fills the cache", func(t *testing.T) {
		f := newItemFixture(true)
		_, err := f.service.Create(ctx, 1, CreateRequest{
			Name:        "drill",
			Description: "cordless",
			Available:   boolPtr(true),
		})
		require.NoError(t, err)

		items, err := f.service.Search(ctx, "drill")
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 1, f.repo.searchCalls)
		assert.Equal(t, 1, f.cache.sets)

		// Second call is served from the cache.
		items, err = f.service.Search(ctx, "drill")
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 1, f.repo.searchCalls)
	})

	t.Run("works without a cache", func(t *testing.T) {
		f := newItemFixture(false)
		items, err := f.service.Search(ctx, "drill")
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 1, f.repo.searchCalls)
	})
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*itemFixture, *Item) {
		f := newItemFixture(false)
		it, err := f.service.Create(ctx, 1, CreateRequest{
			Name:        "drill",
			Description: "cordless drill",
			Available:   boolPtr(true),
		})
		require.NoError(t, err)
		return f, it
	}

	t.Run("author with a finished approved booking may comment", func(t *testing.T) {
		f, it := seed(t)
		f.bookings.byPair[[2]int64{2, it.ID}] = &BookingInfo{
			ID:       7,
			BookerID: 2,
			Status:   "APPROVED",
			End:      itemTestNow.Add(-time.Hour),
		}

		c, err := f.service.CreateComment(ctx, 2, it.ID, "works great")
		require.NoError(t, err)
		assert.Equal(t, "works great", c.Text)
		assert.Equal(t, "booker", c.AuthorName)
		assert.NotZero(t, c.ID)
	})

	t.Run("no booking at all", func(t *testing.T) {
		f, it := seed(t)
		_, err := f.service.CreateComment(ctx, 2, it.ID, "nope")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("booking still waiting", func(t *testing.T) {
		f, it := seed(t)
		f.bookings.byPair[[2]int64{2, it.ID}] = &BookingInfo{
			BookerID: 2,
			Status:   "WAITING",
			End:      itemTestNow.Add(-time.Hour),
		}
		_, err := f.service.CreateComment(ctx, 2, it.ID, "nope")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("booking not finished yet", func(t *testing.T) {
		f, it := seed(t)
		f.bookings.byPair[[2]int64{2, it.ID}] = &BookingInfo{
			BookerID: 2,
			Status:   "APPROVED",
			End:      itemTestNow.Add(time.Hour),
		}
		_, err := f.service.CreateComment(ctx, 2, it.ID, "nope")
		assert.ErrorIs(t, err, ErrCommentNotAllowed)
	})
}
