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

var ErrUserNotFound = apperr.NotFound("User not found")

type UserService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	log      logging.Logger
}

func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher, log logging.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		log:      log,
	}
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Update changes the caller's own profile.
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	if errs := validator.ValidateUserUpdate(input.Username, input.Email, input.Password); errs.HasErrors() {
		return nil, apperr.ValidationFields(errs)
	}

	u, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		u.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		u.Email = validator.NormalizeEmail(*input.Email)
	}
	if input.Password != nil {
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.Update(ctx, u); err != nil {
		if mapped := duplicateUserError(err); mapped != nil {
			return nil, mapped
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return u, nil
}

// Delete removes the caller's account together with their contacts.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	n, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting user: %w", err)
	}

	s.log.Info(ctx, "user deleted", "user_id", userID, "contacts_removed", n)
	return nil
}
