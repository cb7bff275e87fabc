package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/contacts/internal/auth"
	"github.com/vedran77/contacts/internal/domain"
	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/repository/memory"
)

var testHasher = auth.Argon2Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

type env struct {
	users    *memory.UserRepo
	contacts *memory.ContactRepo
	tokens   *auth.TokenManager
	notifier *fakeNotifier

	auth    *AuthService
	user    *UserService
	contact *ContactService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	tokens, err := auth.NewTokenManager("service-test-secret-123", time.Hour)
	require.NoError(t, err)

	store := memory.NewStore()
	e := &env{
		users:    store.Users(),
		contacts: store.Contacts(),
		tokens:   tokens,
		notifier: &fakeNotifier{},
	}
	e.auth, err = NewAuthService(e.users, testHasher, tokens, logging.Nop())
	require.NoError(t, err)
	e.user = NewUserService(e.users, testHasher, logging.Nop())
	e.contact = NewContactService(e.contacts, logging.Nop())
	e.contact.SetNotifier(e.notifier)
	return e
}

func (e *env) register(t *testing.T, username string) *AuthResponse {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@x.com",
		Password: "pw-" + username,
	})
	require.NoError(t, err)
	return resp
}

type fakeNotifier struct {
	mu      sync.Mutex
	created []uuid.UUID
	updated []uuid.UUID
	deleted []uuid.UUID
}

func (f *fakeNotifier) NotifyContactCreated(c *domain.Contact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, c.ID)
}

func (f *fakeNotifier) NotifyContactUpdated(c *domain.Contact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, c.ID)
}

func (f *fakeNotifier) NotifyContactDeleted(_, contactID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, contactID)
}

type failingContactRepo struct {
	*memory.ContactRepo
	err error
}

func (f *failingContactRepo) GetByID(context.Context, uuid.UUID) (*domain.Contact, error) {
	return nil, f.err
}

func (f *failingContactRepo) ListByOwner(context.Context, uuid.UUID) ([]domain.Contact, error) {
	return nil, f.err
}

var errStorageDown = errors.New("storage unavailable")
