// Package services layers the typed domain operations on top of the
// generic store driver: ownership scoping, validation and id generation
// live here, not in the storage layer and not in any form code.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// ErrEmailInUse reports a registration attempt with an email some user
// already has. Matching is a case-sensitive exact comparison.
var ErrEmailInUse = errors.New("email already in use")

// Users exposes account lookup and maintenance. Credential comparison
// is plaintext on purpose: the original behaves that way and silently
// strengthening it would change the observable contract.
type Users struct {
	col storage.Collection[core.User]
}

func NewUsers(store *storage.Store) *Users {
	return &Users{col: storage.Users(store)}
}

// GetByCredentials returns the first user matching both email and
// password exactly, or ErrNotFound.
func (s *Users) GetByCredentials(ctx context.Context, email, password string) (core.User, error) {
	users, err := s.col.All(ctx)
	if err != nil {
		return core.User{}, fmt.Errorf("list users: %w", err)
	}
	for _, u := range users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return core.User{}, fmt.Errorf("user with email %q: %w", email, storage.ErrNotFound)
}

// Create registers a new user. The email must not be held by any
// existing user; the collision check leaves the collection untouched.
func (s *Users) Create(ctx context.Context, name, email, password string) (core.User, error) {
	existing, err := s.col.AllByIndex(ctx, email)
	if err != nil {
		return core.User{}, fmt.Errorf("check email: %w", err)
	}
	if len(existing) > 0 {
		return core.User{}, fmt.Errorf("email %q: %w", email, ErrEmailInUse)
	}

	user := core.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.col.Add(ctx, user); err != nil {
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", log.FieldUserID, user.ID, log.FieldEmail, user.Email)
	return user, nil
}

// Update merges name and email into an existing user record. Missing
// ids yield ErrNotFound.
func (s *Users) Update(ctx context.Context, id, name, email string) (core.User, error) {
	user, err := s.col.Get(ctx, id)
	if err != nil {
		return core.User{}, fmt.Errorf("update user: %w", err)
	}

	user.Name = name
	user.Email = email
	if err := s.col.Put(ctx, user); err != nil {
		return core.User{}, fmt.Errorf("update user: %w", err)
	}

	slog.InfoContext(ctx, "User updated", log.FieldUserID, user.ID)
	return user, nil
}

// List returns every user in the store.
func (s *Users) List(ctx context.Context) ([]core.User, error) {
	users, err := s.col.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
