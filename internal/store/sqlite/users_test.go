package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/bannerdeck/banner-server/internal/domain"
	"github.com/bannerdeck/banner-server/internal/store"
)

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{Username: "alice", Token: "token-alice", Admin: true}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected assigned user ID")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := s.GetUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Username: got %q", got.Username)
	}
	if !got.Admin {
		t.Error("Admin: expected true")
	}
}

func TestCreateUser_DuplicateToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u1 := &domain.User{Username: "alice", Token: "same-token"}
	if err := s.CreateUser(ctx, u1); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u2 := &domain.User{Username: "bob", Token: "same-token"}
	err := s.CreateUser(ctx, u2)
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetUserByToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := &domain.User{Username: "alice", Token: "token-alice"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUserByToken(ctx, "token-alice")
	if err != nil {
		t.Fatalf("GetUserByToken: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("ID: got %d, want %d", got.ID, u.ID)
	}

	_, err = s.GetUserByToken(ctx, "no-such-token")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), 999)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers (empty): %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected 0 users, got %d", len(got))
	}

	for _, name := range []string{"alice", "bob"} {
		u := &domain.User{Username: name, Token: "token-" + name}
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser(%s): %v", name, err)
		}
	}

	got, err = s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %d", len(got))
	}
	if got[0].Username != "alice" || got[1].Username != "bob" {
		t.Errorf("order: got [%s %s]", got[0].Username, got[1].Username)
	}
}
