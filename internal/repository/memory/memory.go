// Package memory implements the repository contracts in process memory.
// It backs STORAGE=memory and the service and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/domain"
	"github.com/vedran77/contacts/internal/repository"
)

// Store holds users and contacts under one lock so that account deletion
// and contact creation are atomic with respect to each other, as the
// foreign key and transaction make them in postgres.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]domain.User
	contacts map[uuid.UUID]domain.Contact
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]domain.User),
		contacts: make(map[uuid.UUID]domain.Contact),
	}
}

func (s *Store) Users() *UserRepo {
	return &UserRepo{s: s}
}

func (s *Store) Contacts() *ContactRepo {
	return &ContactRepo{s: s}
}

type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.checkUnique(user); err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

// checkUnique must be called with the write lock held.
func (r *UserRepo) checkUnique(user *domain.User) error {
	for id, u := range r.s.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *UserRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return 0, repository.ErrNotFound
	}

	var n int64
	for cid, c := range r.s.contacts {
		if c.OwnerID == id {
			delete(r.s.contacts, cid)
			n++
		}
	}
	delete(r.s.users, id)
	return n, nil
}

type ContactRepo struct {
	s *Store
}

func (r *ContactRepo) Create(_ context.Context, c *domain.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[c.OwnerID]; !ok {
		return repository.ErrOwnerNotFound
	}
	r.s.contacts[c.ID] = *c
	return nil
}

func (r *ContactRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.contacts[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ContactRepo) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Contact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []domain.Contact
	for _, c := range r.s.contacts {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ContactRepo) Update(_ context.Context, c *domain.Contact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.contacts[c.ID]
	if !ok || cur.OwnerID != c.OwnerID {
		return repository.ErrNotFound
	}
	r.s.contacts[c.ID] = *c
	return nil
}

func (r *ContactRepo) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.contacts[id]
	if !ok || cur.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.s.contacts, id)
	return nil
}
