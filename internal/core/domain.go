package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeExpense TxnType = "expense"
	TypeIncome  TxnType = "income"
)

type (
	// TxnType distinguishes money going out from money coming in.
	TxnType string

	// User is an account holder. Password is stored and compared in
	// plaintext; this mirrors the original demo behavior and is not
	// suitable beyond a local single-user install.
	User struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		CreatedAt string `json:"created_at"` // ISO-8601
	}

	// Expense is a single income or expense transaction. Date is an
	// ISO-8601 string so that month bucketing and descending sorts are
	// plain string operations.
	Expense struct {
		ID          string  `json:"id"`
		UserID      string  `json:"user_id"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount"`
		Date        string  `json:"date"`
		Category    string  `json:"category"`
		Type        TxnType `json:"type"`
	}

	// Budget is a monthly spending ceiling for one category.
	Budget struct {
		ID       string  `json:"id"`
		UserID   string  `json:"user_id"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrMissingUser      = errors.New("missing user id")
)

func (t TxnType) Validate() error {
	switch t {
	case TypeExpense, TypeIncome:
		return nil
	default:
		return ErrInvalidType
	}
}

// ValidateDate checks that s starts with a well-formed ISO calendar
// date. Anything after the date part (time, offset) is not inspected.
func ValidateDate(s string) error {
	if len(s) < 10 {
		return ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", s[:10]); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrMissingUser
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return e.Type.Validate()
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.UserID) == "" {
		return ErrMissingUser
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
