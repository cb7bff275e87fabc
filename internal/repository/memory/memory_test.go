package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/contacts/internal/domain"
	"github.com/vedran77/contacts/internal/repository"
)

func newUser(username, email string) *domain.User {
	now := time.Now()
	return &domain.User{ID: uuid.New(), Username: username, Email: email, PasswordHash: "h", CreatedAt: now, UpdatedAt: now}
}

// seedUsers stores one user per name and returns their ids.
func seedUsers(t *testing.T, s *Store, names ...string) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, len(names))
	for _, n := range names {
		u := newUser(n, n+"@x.com")
		require.NoError(t, s.Users().Create(context.Background(), u))
		ids = append(ids, u.ID)
	}
	return ids
}

func TestUserRepo_Uniqueness(t *testing.T) {
	ctx := context.Background()
	r := NewStore().Users()

	require.NoError(t, r.Create(ctx, newUser("alice", "alice@x.com")))

	err := r.Create(ctx, newUser("alice2", "alice@x.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	err = r.Create(ctx, newUser("alice", "other@x.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestUserRepo_Lookup(t *testing.T) {
	ctx := context.Background()
	r := NewStore().Users()
	u := newUser("bob", "bob@x.com")
	require.NoError(t, r.Create(ctx, u))

	got, err := r.GetByUsernameOrEmail(ctx, "bob", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	got, err = r.GetByUsernameOrEmail(ctx, "", "bob@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = r.GetByUsernameOrEmail(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = r.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	r := NewStore().Users()
	a := newUser("a", "a@x.com")
	b := newUser("b", "b@x.com")
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))

	b.Email = "a@x.com"
	assert.ErrorIs(t, r.Update(ctx, b), repository.ErrDuplicateEmail)

	a.Username = "a2"
	require.NoError(t, r.Update(ctx, a))

	_, err := r.Delete(ctx, a.ID)
	require.NoError(t, err)
	_, err = r.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, r.Update(ctx, a), repository.ErrNotFound)
}

func TestUserRepo_DeleteTakesContacts(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ids := seedUsers(t, s, "owner", "other")
	owner, other := ids[0], ids[1]

	contacts := s.Contacts()
	require.NoError(t, contacts.Create(ctx, &domain.Contact{ID: uuid.New(), OwnerID: owner}))
	require.NoError(t, contacts.Create(ctx, &domain.Contact{ID: uuid.New(), OwnerID: owner}))
	require.NoError(t, contacts.Create(ctx, &domain.Contact{ID: uuid.New(), OwnerID: other}))

	n, err := s.Users().Delete(ctx, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	left, err := contacts.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, left)

	left, err = contacts.ListByOwner(ctx, other)
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestContactRepo_CreateRequiresOwner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	owner := seedUsers(t, s, "owner")[0]

	err := s.Contacts().Create(ctx, &domain.Contact{ID: uuid.New(), OwnerID: uuid.New()})
	assert.ErrorIs(t, err, repository.ErrOwnerNotFound)

	_, err = s.Users().Delete(ctx, owner)
	require.NoError(t, err)

	err = s.Contacts().Create(ctx, &domain.Contact{ID: uuid.New(), OwnerID: owner})
	assert.ErrorIs(t, err, repository.ErrOwnerNotFound)

	left, err := s.Contacts().ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestContactRepo_OwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ids := seedUsers(t, s, "owner", "other")
	owner, other := ids[0], ids[1]
	r := s.Contacts()
	base := time.Now()

	for i, o := range []uuid.UUID{owner, owner, other} {
		c := &domain.Contact{ID: uuid.New(), OwnerID: o, Name: "c", CreatedAt: base.Add(time.Duration(i) * time.Second)}
		require.NoError(t, r.Create(ctx, c))
	}

	list, err := r.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	for _, c := range list {
		assert.Equal(t, owner, c.OwnerID)
	}
}

func TestContactRepo_OwnerGuardedWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ids := seedUsers(t, s, "owner", "intruder")
	owner, intruder := ids[0], ids[1]
	r := s.Contacts()
	c := &domain.Contact{ID: uuid.New(), OwnerID: owner, Name: "Bob"}
	require.NoError(t, r.Create(ctx, c))

	forged := *c
	forged.OwnerID = intruder
	forged.Name = "Mallory"
	assert.ErrorIs(t, r.Update(ctx, &forged), repository.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, c.ID, intruder), repository.ErrNotFound)

	got, err := r.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	require.NoError(t, r.Delete(ctx, c.ID, owner))
	assert.ErrorIs(t, r.Delete(ctx, c.ID, owner), repository.ErrNotFound)
}
