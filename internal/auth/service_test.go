package auth

import (
	"context"
	"errors"
	"testing"

	sharedauth "docqa-backend/internal/shared/auth"
	"docqa-backend/internal/users"
)

func TestSignupIssuesVerifiableToken(t *testing.T) {
	svc := NewService(users.NewMemoryRepo())

	token, err := svc.Signup(context.Background(), "alice", "Alice@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	claims, err := sharedauth.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email in claims, got %s", claims.Email)
	}
	if claims.Subject == "" {
		t.Fatal("expected subject in claims")
	}
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	svc := NewService(users.NewMemoryRepo())

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("first Signup: %v", err)
	}
	_, err := svc.Signup(context.Background(), "alice2", "alice@example.com", "other")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	svc := NewService(users.NewMemoryRepo())

	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("Login with correct password: %v", err)
	}

	_, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestSignupValidatesInput(t *testing.T) {
	svc := NewService(users.NewMemoryRepo())

	if _, err := svc.Signup(context.Background(), "", "alice@example.com", "s3cret"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty username, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice", "alice@example.com", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty password, got %v", err)
	}
}
