package auth

import (
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewMemoryUserStore())

	if err := svc.Register("alice", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !svc.Authenticate("alice", "s3cret") {
		t.Fatalf("expected correct password to authenticate")
	}
	if svc.Authenticate("alice", "wrong") {
		t.Fatalf("wrong password must not authenticate")
	}
	if svc.Authenticate("bob", "s3cret") {
		t.Fatalf("unknown login must not authenticate")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryUserStore())

	if err := svc.Register("  ", "s3cret"); !errors.Is(err, ErrEmptyLogin) {
		t.Fatalf("expected ErrEmptyLogin, got %v", err)
	}
	if err := svc.Register("alice", "abc"); !errors.Is(err, ErrShortPassword) {
		t.Fatalf("expected ErrShortPassword, got %v", err)
	}
	if err := svc.Register("alice", "s3cret"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Register("alice", "other-password"); !errors.Is(err, ErrDuplicateLogin) {
		t.Fatalf("expected ErrDuplicateLogin, got %v", err)
	}
}

func TestHashDependsOnSalt(t *testing.T) {
	a := hash("password", []byte("salt-one........"))
	b := hash("password", []byte("salt-two........"))
	if a == b {
		t.Fatalf("different salts must produce different hashes")
	}
	if a != hash("password", []byte("salt-one........")) {
		t.Fatalf("hash must be deterministic for the same salt")
	}
}
