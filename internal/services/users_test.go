package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fintrack/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateThenGetByCredentials(t *testing.T) {
	users := NewUsers(newTestStore(t))
	ctx := context.Background()

	created, err := users.Create(ctx, "Alice", "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if created.CreatedAt == "" {
		t.Fatal("expected created_at stamp")
	}

	got, err := users.GetByCredentials(ctx, "alice@example.com", "s3cret")
	if err != nil {
		t.Fatalf("get by credentials: %v", err)
	}
	if got.Email != created.Email || got.Name != created.Name {
		t.Fatalf("expected %+v, got %+v", created, got)
	}
}

func TestGetByCredentialsRequiresBothFields(t *testing.T) {
	users := NewUsers(newTestStore(t))
	ctx := context.Background()

	if _, err := users.Create(ctx, "Alice", "alice@example.com", "s3cret"); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name            string
		email, password string
	}{
		{"wrong password", "alice@example.com", "nope"},
		{"wrong email", "bob@example.com", "s3cret"},
		{"case-sensitive email", "Alice@example.com", "s3cret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := users.GetByCredentials(ctx, tc.email, tc.password)
			if !errors.Is(err, storage.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestCreateRejectsEmailInUse(t *testing.T) {
	users := NewUsers(newTestStore(t))
	ctx := context.Background()

	if _, err := users.Create(ctx, "Alice", "alice@example.com", "one"); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := users.Create(ctx, "Impostor", "alice@example.com", "two")
	if !errors.Is(err, ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}

	// The collision must not have altered the stored collection.
	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 user, got %d", len(all))
	}
	if all[0].Name != "Alice" {
		t.Fatalf("stored user changed: %+v", all[0])
	}
}

func TestUpdateUser(t *testing.T) {
	users := NewUsers(newTestStore(t))
	ctx := context.Background()

	created, err := users.Create(ctx, "Alice", "alice@example.com", "pw")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := users.Update(ctx, created.ID, "Alice B", "aliceb@example.com")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alice B" || updated.Email != "aliceb@example.com" {
		t.Fatalf("unexpected update result %+v", updated)
	}
	// Untouched fields are merged, not dropped.
	if updated.Password != "pw" || updated.CreatedAt != created.CreatedAt {
		t.Fatalf("update lost fields: %+v", updated)
	}

	if _, err := users.GetByCredentials(ctx, "aliceb@example.com", "pw"); err != nil {
		t.Fatalf("get after update: %v", err)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	users := NewUsers(newTestStore(t))

	_, err := users.Update(context.Background(), "no-such-id", "X", "x@example.com")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
