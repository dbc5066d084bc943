package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users  map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[int64]*User), nextID: 1}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	u.ID = f.nextID
	f.nextID++
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context) ([]*User, error) {
	out := []*User{}
	for _, u := range f.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return ErrNotFound
	}
	for _, existing := range f.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with normalized email", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u, err := svc.Create(ctx, CreateRequest{Name: "  Alice ", Email: " Alice@Example.COM "})
		require.NoError(t, err)
		assert.NotZero(t, u.ID)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "alice@example.com", u.Email)
	})

	t.Run("blank email fails", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "   "})
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("blank name fails", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, CreateRequest{Name: " ", Email: "a@example.com"})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "a@example.com"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateRequest{Name: "Bob", Email: "A@Example.com"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (Service, *User) {
		svc := NewService(newFakeRepo())
		u, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "a@example.com"})
		require.NoError(t, err)
		return svc, u
	}

	t.Run("updates provided fields only", func(t *testing.T) {
		svc, u := seed(t)
		name := "Alicia"
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alicia", updated.Name)
		assert.Equal(t, "a@example.com", updated.Email)
	})

	t.Run("blank fields are ignored", func(t *testing.T) {
		svc, u := seed(t)
		blank := "  "
		updated, err := svc.Update(ctx, u.ID, UpdateRequest{Name: &blank, Email: &blank})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.Name)
		assert.Equal(t, "a@example.com", updated.Email)
	})

	t.Run("email collision is rejected", func(t *testing.T) {
		svc, u := seed(t)
		_, err := svc.Create(ctx, CreateRequest{Name: "Bob", Email: "b@example.com"})
		require.NoError(t, err)

		taken := "b@example.com"
		_, err = svc.Update(ctx, u.ID, UpdateRequest{Email: &taken})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("missing user", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		name := "x"
		_, err := svc.Update(ctx, 999, UpdateRequest{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	u, err := svc.Create(ctx, CreateRequest{Name: "Alice", Email: "a@example.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))

	_, err = svc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, u.ID), ErrNotFound)
}
