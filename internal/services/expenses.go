package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Expenses exposes CRUD over transactions, scoped to the owning user.
// A user_id mismatch is reported as ErrNotFound so the existence of
// another user's record never leaks.
type Expenses struct {
	col       storage.Collection[core.Expense]
	listCache cache.Cache[[]core.Expense]
}

// NewExpenses wires the expenses collection. listCache may be nil to
// disable list memoization.
func NewExpenses(store *storage.Store, listCache cache.Cache[[]core.Expense]) *Expenses {
	return &Expenses{col: storage.Expenses(store), listCache: listCache}
}

// List returns the user's expenses sorted descending by date. Records
// sharing a date keep their stored relative order.
func (s *Expenses) List(ctx context.Context, userID string) ([]core.Expense, error) {
	if s.listCache != nil {
		if cached, ok := s.listCache.Get(userID); ok {
			return cached, nil
		}
	}

	expenses, err := s.col.AllByIndex(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})

	if s.listCache != nil {
		s.listCache.Set(userID, expenses)
	}
	return expenses, nil
}

// Create validates and persists an expense, generating an id when the
// caller did not supply one. A caller-supplied id that already exists
// surfaces as ErrDuplicateKey.
func (s *Expenses) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	if err := s.col.Add(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	s.invalidate(e.UserID)

	slog.InfoContext(ctx, "Expense created",
		log.FieldExpenseID, e.ID,
		log.FieldUserID, e.UserID,
		log.FieldCategory, e.Category,
		log.FieldAmount, e.Amount)
	return e, nil
}

// Update overwrites an existing expense. The stored record must exist
// and belong to e.UserID, otherwise ErrNotFound.
func (s *Expenses) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	stored, err := s.col.Get(ctx, e.ID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	if stored.UserID != e.UserID {
		return core.Expense{}, fmt.Errorf("expense %q: %w", e.ID, storage.ErrNotFound)
	}

	if err := s.col.Put(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	s.invalidate(e.UserID)

	slog.InfoContext(ctx, "Expense updated", log.FieldExpenseID, e.ID, log.FieldUserID, e.UserID)
	return e, nil
}

// Delete removes the expense when it exists and belongs to userID,
// otherwise ErrNotFound.
func (s *Expenses) Delete(ctx context.Context, id, userID string) error {
	stored, err := s.col.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if stored.UserID != userID {
		return fmt.Errorf("expense %q: %w", id, storage.ErrNotFound)
	}

	if err := s.col.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.invalidate(userID)

	slog.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id, log.FieldUserID, userID)
	return nil
}

func (s *Expenses) invalidate(userID string) {
	if s.listCache != nil {
		s.listCache.Delete(userID)
	}
}
