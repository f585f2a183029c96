package core

import (
	"fmt"
	"strconv"
)

// FirstID is the identifier assigned to the first transaction of a scope.
const FirstID = "a0001"

// NextID produces the next sequential transaction identifier given the
// existing identifiers of the scope, in insertion order.
//
// Identifiers are a lowercase letter followed by a four digit number.
// The successor is derived from the LAST identifier in the sequence, not
// the lexicographically greatest one: after deletes or out-of-order edits
// the two diverge, and this scheme deliberately follows whatever row was
// appended most recently. When the numeric part reaches 9999 the letter
// advances and the number resets to 0001. Running past z9999 fails with
// ErrExhaustedIDSpace.
func NextID(existing []string) (string, error) {
	if len(existing) == 0 {
		return FirstID, nil
	}
	last := existing[len(existing)-1]
	letter, num, err := splitID(last)
	if err != nil {
		return "", err
	}
	if num < 9999 {
		return fmt.Sprintf("%c%04d", letter, num+1), nil
	}
	if letter == 'z' {
		return "", ErrExhaustedIDSpace
	}
	return fmt.Sprintf("%c%04d", letter+1, 1), nil
}

func splitID(id string) (byte, int, error) {
	if len(id) != 5 || id[0] < 'a' || id[0] > 'z' {
		return 0, 0, fmt.Errorf("malformed transaction id %q", id)
	}
	num, err := strconv.Atoi(id[1:])
	if err != nil || num < 0 {
		return 0, 0, fmt.Errorf("malformed transaction id %q", id)
	}
	return id[0], num, nil
}
