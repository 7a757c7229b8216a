// Package ledger implements the group expense ledger and debt-settlement
// engine: it reduces a group's expense records into one net balance per
// member, then produces the point-to-point transfers that settle every
// balance.
//
// Both stages are pure functions over immutable inputs. The package does no
// I/O and holds no state; callers load the member and expense records, map
// them onto the input types defined here, and re-run the engine against the
// full current expense set after any mutation.
package ledger

import "fmt"

// Expense is one recorded group expense with the minimal information the
// engine needs: who paid, how much, and how the amount divides among members.
// Callers map their storage rows onto this type; the engine never sees the
// persistence schema.
type Expense struct {
	ID     string
	Payer  string
	Amount Money
	Splits []Split
}

// Split states how much of one expense a single member owes. A member need
// not be the payer to owe a split, and the payer need not owe a split of
// their own expense.
type Split struct {
	Member string
	Amount Money
}

// splitTolerance is the permitted gap between an expense amount and the sum
// of its splits: one minor unit, to absorb rounding of uneven divisions
// (100.00 split three ways as 33.33/33.33/33.34).
var splitTolerance = MoneyFromMinorUnits(1)

// AggregateBalances folds expenses into one signed balance per member:
// each expense adds its amount to the payer's balance and subtracts each
// split from that split's member. A payer who also owes a split of their own
// expense gets both adjustments; they net out without special-casing.
//
// Every member in members appears in the returned map, with an explicit zero
// balance if no expense touched them. The second return value is the sum of
// all expense amounts.
//
// Validation runs before any aggregation: unknown payer or split members and
// split sums that stray more than one minor unit from the expense amount fail
// with *IntegrityError naming the offending expense. Bad data is never
// dropped or clamped.
func AggregateBalances(members []string, expenses []Expense) (map[string]Money, Money, error) {
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m] = true
	}

	for _, e := range expenses {
		if err := validate(known, e); err != nil {
			return nil, Money{}, err
		}
	}

	balances := make(map[string]Money, len(members))
	for _, m := range members {
		balances[m] = Zero()
	}

	total := Zero()
	for _, e := range expenses {
		total = total.Add(e.Amount)
		balances[e.Payer] = balances[e.Payer].Add(e.Amount)
		for _, s := range e.Splits {
			balances[s.Member] = balances[s.Member].Sub(s.Amount)
		}
	}

	return balances, total, nil
}

// ValidateExpense checks a single expense against a member list using the
// same rules aggregation applies. Callers use it to reject bad records at
// write time instead of discovering them at the next settlement run.
func ValidateExpense(members []string, e Expense) error {
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m] = true
	}
	return validate(known, e)
}

func validate(known map[string]bool, e Expense) error {
	if e.Amount.Sign() <= 0 {
		return fmt.Errorf("expense %s: amount %s: %w", e.ID, e.Amount, ErrInvalidAmount)
	}
	if !known[e.Payer] {
		return &IntegrityError{ExpenseID: e.ID, Reason: fmt.Sprintf("payer %q is not a group member", e.Payer)}
	}
	if len(e.Splits) == 0 {
		return &IntegrityError{ExpenseID: e.ID, Reason: "expense has no splits"}
	}

	splitSum := Zero()
	for _, s := range e.Splits {
		if s.Amount.Sign() < 0 {
			return fmt.Errorf("expense %s: split for %q: amount %s: %w", e.ID, s.Member, s.Amount, ErrInvalidAmount)
		}
		if !known[s.Member] {
			return &IntegrityError{ExpenseID: e.ID, Reason: fmt.Sprintf("split member %q is not a group member", s.Member)}
		}
		splitSum = splitSum.Add(s.Amount)
	}

	if splitSum.Sub(e.Amount).Abs().Cmp(splitTolerance) > 0 {
		return &IntegrityError{
			ExpenseID: e.ID,
			Reason:    fmt.Sprintf("splits sum to %s, expense amount is %s", splitSum, e.Amount),
		}
	}
	return nil
}
