package service

import (
	"context"
	"errors"
	"testing"
)

func TestLoginIssuesValidToken(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	resp, err := svc.Login(context.Background(), "Alice", "god-jul")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Expected a signed token")
	}
	if resp.User.Subject != "alice" || resp.User.Name != "Alice" {
		t.Errorf("Unexpected user %+v", resp.User)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken rejected a fresh token: %v", err)
	}
	if claims.Subject != "alice" || claims.Name != "Alice" {
		t.Errorf("Unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	_, err := svc.Login(context.Background(), "Alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	_, err = svc.Login(context.Background(), "   ", "god-jul")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for blank name, got %v", err)
	}
}

func TestLoginSameNameSameUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewAuthService(repo)

	first, err := svc.Login(context.Background(), "Alice", "god-jul")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	second, err := svc.Login(context.Background(), "alice", "god-jul")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if first.User.ID != second.User.ID {
		t.Error("Case variants of a name must map to the same user")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{})

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateToken(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	issuer := NewAuthService(&fakeUserRepo{})
	resp, err := issuer.Login(context.Background(), "Alice", "god-jul")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	verifier := NewAuthService(&fakeUserRepo{})
	if _, err := verifier.ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for a foreign signature, got %v", err)
	}
}
