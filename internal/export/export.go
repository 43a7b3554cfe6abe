// Package export serializes already-fetched collections to a JSON
// document. It sits entirely outside the core persistence layer: the
// domain operations hand over plain slices and this package only
// encodes them.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/services"
)

// Snapshot is the document layout written by Write.
type Snapshot struct {
	Users    []core.User    `json:"users"`
	Expenses []core.Expense `json:"expenses"`
	Budgets  []core.Budget  `json:"budgets"`
}

// Write fetches the user's expenses and budgets plus the user list
// concurrently and writes them as indented JSON.
func Write(ctx context.Context, w io.Writer, userID string, users *services.Users, expenses *services.Expenses, budgets *services.Budgets) error {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Users, err = users.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Expenses, err = expenses.List(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Budgets, err = budgets.List(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("collect snapshot: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}
