package core

import (
	"errors"
	"strings"
)

type (
	// Transaction is one ledger row. Balance is derived: the engine stamps
	// the scope-wide net total onto every row after each mutation, it is
	// never set independently.
	Transaction struct {
		ID       string `json:"id"`
		Date     Date   `json:"date"`
		Category string `json:"category"`
		Subhead  string `json:"subhead"`
		Debit    Money  `json:"debit"`
		Credit   Money  `json:"credit"`
		User     string `json:"user,omitempty"`
		Balance  Money  `json:"balance"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrExhaustedIDSpace = errors.New("identifier space exhausted")
	ErrNotFound         = errors.New("transaction not found")
	ErrStoreUnavailable = errors.New("ledger store unavailable")
)

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrInvalidCategory
	}
	if t.Debit.Cents < 0 || t.Credit.Cents < 0 {
		return errors.New("debit and credit must be non-negative")
	}
	return nil
}

// Net returns credit minus debit for this row.
func (t Transaction) Net() Money {
	return Money{Cents: t.Credit.Cents - t.Debit.Cents}
}
