package export

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func TestWriteSnapshotsSeededStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := storage.Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users := services.NewUsers(store)
	expenses := services.NewExpenses(store, nil)
	budgets := services.NewBudgets(store, nil)

	all, err := users.List(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(ctx, &buf, all[0].ID, users, expenses, budgets); err != nil {
		t.Fatalf("write: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(buf.Bytes(), &snap); err != nil {
		t.Fatalf("decode exported document: %v", err)
	}
	if len(snap.Users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(snap.Users))
	}
	if len(snap.Expenses) != 5 {
		t.Fatalf("expected 5 expenses, got %d", len(snap.Expenses))
	}
	if len(snap.Budgets) != 3 {
		t.Fatalf("expected 3 budgets, got %d", len(snap.Budgets))
	}
	if snap.Users[0].Password == "" {
		// Plaintext passwords are part of the original contract; the
		// export keeps the record intact.
		t.Fatal("expected password field to round-trip")
	}
}
