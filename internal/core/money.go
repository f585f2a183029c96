// Package core holds the ledger domain types: transactions, dates, money
// and the sequential identifier scheme.
package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a monetary amount in cents. Debit and credit amounts are always
// non-negative; balances may be negative.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to a non-negative amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Empty, unparseable
// or negative input normalizes to zero cents rather than failing; operator
// entry forms treat a blank amount as "no amount".
func ParseAmount(s string) Money {
	cents, ok := parseCents(s)
	if !ok || cents < 0 {
		return Money{}
	}
	return Money{Cents: cents}
}

// ParseSignedAmount is like ParseAmount but keeps the sign. It is used when
// reading stored balance values back from a backend.
func ParseSignedAmount(s string) Money {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	cents, ok := parseCents(s)
	if !ok {
		return Money{}
	}
	if neg {
		cents = -cents
	}
	return Money{Cents: cents}
}

func parseCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimPrefix(s, "+")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, false
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, false
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, false
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, false
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, true
}

// Amount returns the value as a float64 for display purposes. Use cents for
// calculations.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount as a plain decimal with two fractional digits,
// e.g. "500.00" or "-12.34".
func (m Money) String() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// MarshalJSON renders money as a decimal string so spreadsheet-facing
// clients see "500.00" instead of a cent count.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Accept bare numbers too.
		var f float64
		if err2 := json.Unmarshal(data, &f); err2 != nil {
			return err
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	*m = ParseSignedAmount(s)
	return nil
}
