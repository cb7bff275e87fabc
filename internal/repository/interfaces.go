package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/domain"
)

var (
	// ErrNotFound is returned by mutations that matched no row.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")

	// ErrOwnerNotFound is returned when a contact is created for a user that
	// does not exist, e.g. an account deleted while its token is still valid.
	ErrOwnerNotFound = errors.New("contact owner not found")
)

// UserRepository stores credentials. Get* methods return nil, nil when no
// record matches.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByUsernameOrEmail matches either field; empty arguments are ignored.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user and every contact they own atomically and
	// reports how many contacts went with them.
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ContactRepository stores contacts. Update and Delete are conditioned on
// the owner so a write never lands on a record whose owner changed after the
// authorization check.
type ContactRepository interface {
	// Create fails with ErrOwnerNotFound when the owner does not exist.
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	// ListByOwner returns the owner's contacts, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
