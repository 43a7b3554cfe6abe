package storage

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
)

// Demo records inserted on first run so a fresh install has something
// to show. Fixed ids keep the seed reproducible.
var (
	demoUser = core.User{
		ID:        "user1",
		Name:      "Demo User",
		Email:     "demo@example.com",
		Password:  "demo123",
		CreatedAt: "2023-04-01T00:00:00Z",
	}

	demoExpenses = []core.Expense{
		{ID: "exp1", UserID: "user1", Description: "Grocery shopping", Amount: 85.75, Date: "2023-04-15", Category: "Food", Type: core.TypeExpense},
		{ID: "exp2", UserID: "user1", Description: "Monthly salary", Amount: 3000, Date: "2023-04-01", Category: "Salary", Type: core.TypeIncome},
		{ID: "exp3", UserID: "user1", Description: "Monthly rent", Amount: 1200, Date: "2023-04-05", Category: "Housing", Type: core.TypeExpense},
		{ID: "exp4", UserID: "user1", Description: "Car insurance", Amount: 500, Date: "2023-04-10", Category: "Transportation", Type: core.TypeExpense},
		{ID: "exp5", UserID: "user1", Description: "Movie tickets", Amount: 45.5, Date: "2023-04-22", Category: "Entertainment", Type: core.TypeExpense},
	}

	demoBudgets = []core.Budget{
		{ID: "bud1", UserID: "user1", Category: "Food", Amount: 400},
		{ID: "bud2", UserID: "user1", Category: "Transportation", Amount: 550},
		{ID: "bud3", UserID: "user1", Category: "Entertainment", Amount: 100},
	}
)

// Seed inserts the demo data set when the store holds no users yet.
// Subsequent opens see a non-zero user count and skip, so the seed runs
// at most once per store lifetime. Callers treat a seed failure as
// non-fatal: the store stays usable either way.
func Seed(ctx context.Context, s *Store) error {
	users := Users(s)
	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		slog.DebugContext(ctx, "Seed skipped, store already populated", "users", count)
		return nil
	}

	if err := users.Add(ctx, demoUser); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	expenses := Expenses(s)
	for _, e := range demoExpenses {
		if err := expenses.Add(ctx, e); err != nil {
			return fmt.Errorf("seed expense %s: %w", e.ID, err)
		}
	}

	budgets := Budgets(s)
	for _, b := range demoBudgets {
		if err := budgets.Add(ctx, b); err != nil {
			return fmt.Errorf("seed budget %s: %w", b.ID, err)
		}
	}

	slog.InfoContext(ctx, "Seeded demo data",
		"user", demoUser.ID,
		"expenses", len(demoExpenses),
		"budgets", len(demoBudgets))
	return nil
}
