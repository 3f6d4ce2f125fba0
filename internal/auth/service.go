package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedauth "docqa-backend/internal/shared/auth"
	"docqa-backend/internal/users"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
)

// Service handles signup and login, issuing bearer tokens on success.
type Service struct {
	Users users.Repo
}

func NewService(repo users.Repo) *Service {
	return &Service{Users: repo}
}

// Signup creates a user with a bcrypt-hashed password and returns a token.
func (s *Service) Signup(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return "", ErrInvalidInput
	}

	hash, err := hashPassword(password)
	if err != nil {
		return "", err
	}

	user := users.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return sharedauth.SignToken(user.ID, user.Username, user.Email)
}

// Login verifies credentials and returns a token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidInput
	}

	user, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return sharedauth.SignToken(user.ID, user.Username, user.Email)
}
