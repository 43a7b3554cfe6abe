package storage

import (
	"context"
	"testing"

	"fintrack/internal/core"
)

func TestSeedPopulatesEmptyStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	users, err := Users(store).All(ctx)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected exactly 1 user, got %d", len(users))
	}

	expenses, err := Expenses(store).AllByIndex(ctx, users[0].ID)
	if err != nil {
		t.Fatalf("list expenses: %v", err)
	}
	if len(expenses) != 5 {
		t.Fatalf("expected exactly 5 expenses, got %d", len(expenses))
	}

	wantAmounts := map[string]float64{
		"exp1": 85.75,
		"exp2": 3000,
		"exp3": 1200,
		"exp4": 500,
		"exp5": 45.5,
	}
	for _, e := range expenses {
		want, ok := wantAmounts[e.ID]
		if !ok {
			t.Fatalf("unexpected seeded expense id %q", e.ID)
		}
		if e.Amount != want {
			t.Fatalf("expense %s: expected amount %v, got %v", e.ID, want, e.Amount)
		}
		if e.UserID != users[0].ID {
			t.Fatalf("expense %s: expected owner %s, got %s", e.ID, users[0].ID, e.UserID)
		}
	}

	budgets, err := Budgets(store).AllByIndex(ctx, users[0].ID)
	if err != nil {
		t.Fatalf("list budgets: %v", err)
	}
	if len(budgets) == 0 {
		t.Fatal("expected seeded budgets")
	}
}

func TestSeedRunsAtMostOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := Seed(ctx, store); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := Seed(ctx, store); err != nil {
		t.Fatalf("second seed should be a no-op, got %v", err)
	}

	count, err := Users(store).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 user after double seed, got %d", count)
	}
}

func TestSeedSkipsPopulatedStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	existing := core.User{ID: "u-existing", Name: "Someone", Email: "someone@example.com"}
	if err := Users(store).Add(ctx, existing); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}

	count, err := Expenses(store).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no demo expenses in populated store, got %d", count)
	}
}
