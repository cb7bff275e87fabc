package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/contacts/internal/apperr"
	"github.com/vedran77/contacts/internal/domain"
	"github.com/vedran77/contacts/internal/logging"
	"github.com/vedran77/contacts/internal/repository"
	"github.com/vedran77/contacts/pkg/validator"
)

var (
	ErrContactNotFound = apperr.NotFound("Contact not found")
	ErrNoContacts      = apperr.NotFound("No Contact Found")
	ErrNoIdentity      = apperr.Unauthenticated("Not authorized")
)

// Notifier broadcasts contact changes to the owner's live sessions.
type Notifier interface {
	NotifyContactCreated(c *domain.Contact)
	NotifyContactUpdated(c *domain.Contact)
	NotifyContactDeleted(ownerID, contactID uuid.UUID)
}

type ContactService struct {
	contactRepo repository.ContactRepository
	notifier    Notifier
	log         logging.Logger
}

func NewContactService(contactRepo repository.ContactRepository, log logging.Logger) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		log:         log,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *ContactService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreateContactInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateContactInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (s *ContactService) Create(ctx context.Context, ownerID uuid.UUID, input CreateContactInput) (*domain.Contact, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNoIdentity
	}
	if errs := validator.ValidateContact(input.Name, input.Email, input.Phone); errs.HasErrors() {
		return nil, apperr.ValidationFields(errs)
	}

	now := time.Now().UTC()
	c := &domain.Contact{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(input.Name),
		Email:     validator.NormalizeEmail(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.contactRepo.Create(ctx, c); err != nil {
		// the token outlived its account
		if errors.Is(err, repository.ErrOwnerNotFound) {
			return nil, ErrNoIdentity
		}
		return nil, fmt.Errorf("creating contact: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyContactCreated(c)
	}
	return c, nil
}

// List returns only the caller's contacts; the filter is applied in storage.
func (s *ContactService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Contact, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNoIdentity
	}

	contacts, err := s.contactRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing contacts: %w", err)
	}
	if len(contacts) == 0 {
		return nil, ErrNoContacts
	}
	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, callerID, contactID uuid.UUID) (*domain.Contact, error) {
	c, err := s.load(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if err := authorizeContact(callerID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContactService) Update(ctx context.Context, callerID, contactID uuid.UUID, input UpdateContactInput) (*domain.Contact, error) {
	// reject bad input before touching storage so nothing is half-applied
	if errs := validator.ValidateContactUpdate(input.Name, input.Email, input.Phone); errs.HasErrors() {
		return nil, apperr.ValidationFields(errs)
	}

	c, err := s.load(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if err := authorizeContact(callerID, c); err != nil {
		s.log.Warn(ctx, "contact update denied", "contact_id", contactID, "caller_id", callerID)
		return nil, err
	}

	if input.Name != nil {
		c.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		c.Email = validator.NormalizeEmail(*input.Email)
	}
	if input.Phone != nil {
		c.Phone = strings.TrimSpace(*input.Phone)
	}
	c.UpdatedAt = time.Now().UTC()

	// the write is conditioned on the owner that was just authorized
	if err := s.contactRepo.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("updating contact: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyContactUpdated(c)
	}
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, callerID, contactID uuid.UUID) error {
	c, err := s.load(ctx, contactID)
	if err != nil {
		return err
	}
	if err := authorizeContact(callerID, c); err != nil {
		s.log.Warn(ctx, "contact delete denied", "contact_id", contactID, "caller_id", callerID)
		return err
	}

	if err := s.contactRepo.Delete(ctx, c.ID, c.OwnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("deleting contact: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyContactDeleted(c.OwnerID, c.ID)
	}
	return nil
}

func (s *ContactService) load(ctx context.Context, contactID uuid.UUID) (*domain.Contact, error) {
	c, err := s.contactRepo.GetByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("loading contact: %w", err)
	}
	if c == nil {
		return nil, ErrContactNotFound
	}
	return c, nil
}
