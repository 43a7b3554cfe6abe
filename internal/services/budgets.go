package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Budgets mirrors the expense operations for monthly category ceilings:
// same ownership scoping, no date, no transaction type.
type Budgets struct {
	col       storage.Collection[core.Budget]
	listCache cache.Cache[[]core.Budget]
}

// NewBudgets wires the budgets collection. listCache may be nil to
// disable list memoization.
func NewBudgets(store *storage.Store, listCache cache.Cache[[]core.Budget]) *Budgets {
	return &Budgets{col: storage.Budgets(store), listCache: listCache}
}

// List returns the user's budgets in stored order.
func (s *Budgets) List(ctx context.Context, userID string) ([]core.Budget, error) {
	if s.listCache != nil {
		if cached, ok := s.listCache.Get(userID); ok {
			return cached, nil
		}
	}

	budgets, err := s.col.AllByIndex(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	if s.listCache != nil {
		s.listCache.Set(userID, budgets)
	}
	return budgets, nil
}

// Create validates and persists a budget, generating an id when the
// caller did not supply one.
func (s *Budgets) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("validate budget: %w", err)
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	if err := s.col.Add(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	s.invalidate(b.UserID)

	slog.InfoContext(ctx, "Budget created",
		log.FieldBudgetID, b.ID,
		log.FieldUserID, b.UserID,
		log.FieldCategory, b.Category,
		log.FieldAmount, b.Amount)
	return b, nil
}

// Update overwrites an existing budget under the same ownership check
// as expenses.
func (s *Budgets) Update(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, fmt.Errorf("validate budget: %w", err)
	}

	stored, err := s.col.Get(ctx, b.ID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	if stored.UserID != b.UserID {
		return core.Budget{}, fmt.Errorf("budget %q: %w", b.ID, storage.ErrNotFound)
	}

	if err := s.col.Put(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}
	s.invalidate(b.UserID)

	slog.InfoContext(ctx, "Budget updated", log.FieldBudgetID, b.ID, log.FieldUserID, b.UserID)
	return b, nil
}

// Delete removes the budget when it exists and belongs to userID,
// otherwise ErrNotFound.
func (s *Budgets) Delete(ctx context.Context, id, userID string) error {
	stored, err := s.col.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if stored.UserID != userID {
		return fmt.Errorf("budget %q: %w", id, storage.ErrNotFound)
	}

	if err := s.col.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	s.invalidate(userID)

	slog.InfoContext(ctx, "Budget deleted", log.FieldBudgetID, id, log.FieldUserID, userID)
	return nil
}

func (s *Budgets) invalidate(userID string) {
	if s.listCache != nil {
		s.listCache.Delete(userID)
	}
}
