package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/marinhl/housemate/internal/user"
	"github.com/marinhl/housemate/pkg/token"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// Service handles registration and login
type Service struct {
	users  *user.Repository
	tokens *token.Issuer
}

// NewService creates a new auth service with dependencies injected
func NewService(users *user.Repository, tokens *token.Issuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account with a bcrypt-hashed password and returns
// a signed session token for it
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (string, *user.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &user.CreateUserRequest{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	})
	if err != nil {
		return "", nil, err
	}

	signed, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, err
	}

	return signed, created, nil
}

// Login authenticates an email/password pair and returns a signed session
// token. The bcrypt comparison runs against the stored hash; the plain
// password is never hashed separately first.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *user.User, error) {
	found, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if found == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(found.ID)
	if err != nil {
		return "", nil, err
	}

	return signed, found, nil
}
