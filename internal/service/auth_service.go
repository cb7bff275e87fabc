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
	ErrEmailTaken    = apperr.Conflict("Email is already registered")
	ErrUsernameTaken = apperr.Conflict("Username is already taken")
	// ErrInvalidCreds never says which part of the credentials was wrong.
	ErrInvalidCreds = apperr.Unauthenticated("Invalid credentials")
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	log      logging.Logger

	// dummyHash is verified against when the user does not exist so that
	// unknown identifiers cost the same as wrong passwords.
	dummyHash string
}

func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, log logging.Logger) (*AuthService, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("hashing dummy password: %w", err)
	}
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		log:       log,
		dummyHash: dummy,
	}, nil
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput identifies the user by email or username. Either field may
// carry either value.
type LoginInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if errs := validator.ValidateRegister(input.Username, input.Email, input.Password); errs.HasErrors() {
		return nil, apperr.ValidationFields(errs)
	}

	username := strings.TrimSpace(input.Username)
	email := validator.NormalizeEmail(input.Email)

	existing, err := s.userRepo.GetByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if existing != nil {
		if existing.Email == email {
			return nil, ErrEmailTaken
		}
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// a concurrent registration can still win the race; the unique
	// constraint reports it here
	if err := s.userRepo.Create(ctx, user); err != nil {
		if mapped := duplicateUserError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return &AuthResponse{User: user, AccessToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	identifier := strings.TrimSpace(input.Email)
	if identifier == "" {
		identifier = strings.TrimSpace(input.Username)
	}

	if errs := validator.ValidateLogin(identifier, input.Password); errs.HasErrors() {
		return nil, apperr.ValidationFields(errs)
	}

	user, err := s.userRepo.GetByUsernameOrEmail(ctx, identifier, validator.NormalizeEmail(identifier))
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if user == nil {
		s.hasher.Verify(input.Password, s.dummyHash)
		return nil, ErrInvalidCreds
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		s.log.Warn(ctx, "failed login", "user_id", user.ID)
		return nil, ErrInvalidCreds
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: token}, nil
}

func duplicateUserError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrEmailTaken
	case errors.Is(err, repository.ErrDuplicateUsername):
		return ErrUsernameTaken
	}
	return nil
}
