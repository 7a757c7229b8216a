package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAmount indicates a Money was built from an unparsable or
	// out-of-range source value (e.g. a negative expense amount).
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrUnbalancedLedger indicates post-aggregation balances do not sum to
	// zero within rounding tolerance. This means the input data is corrupt;
	// the engine refuses to produce a settlement rather than guess.
	ErrUnbalancedLedger = errors.New("ledger balances do not sum to zero")
	// ErrEmptyGroup indicates the engine was invoked with zero members.
	ErrEmptyGroup = errors.New("group has no members")
)

// IntegrityError reports an expense record that is inconsistent with the rest
// of the ledger: splits that do not sum to the expense amount, or a payer or
// split member outside the group. None of these are engine bugs; callers
// should surface them as a data-repair signal, not a retriable failure.
type IntegrityError struct {
	ExpenseID string
	Reason    string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("expense %s: %s", e.ExpenseID, e.Reason)
}
