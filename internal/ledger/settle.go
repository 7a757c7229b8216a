package ledger

import "sort"

// Transfer is one settlement instruction: From pays To the given amount.
// Amount is always positive.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount Money  `json:"amount"`
}

// party is one side of the matching: a member and how much of their balance
// is still unsettled.
type party struct {
	member    string
	remaining Money
}

// ResolveTransfers turns a balance map into the list of transfers that drives
// every balance to zero.
//
// Strategy: greedy largest-first matching. Debtors and creditors are each
// sorted by remaining amount descending, and the head debtor repeatedly pays
// min(debtor remaining, creditor remaining) to the head creditor until both
// lists are exhausted. This is not a globally transaction-count-minimal
// matching; it is the behavior the application has always presented, and
// changing it would change user-facing numbers.
//
// When two members have equal remaining amounts they are ordered by member id
// ascending, so the output is deterministic regardless of map iteration
// order.
//
// If the balances do not sum to zero within one minor unit the input is
// corrupt and ResolveTransfers fails with ErrUnbalancedLedger.
func ResolveTransfers(balances map[string]Money) ([]Transfer, error) {
	var debtors, creditors []party
	sum := Zero()
	for member, bal := range balances {
		sum = sum.Add(bal)
		switch {
		case bal.Sign() < 0:
			debtors = append(debtors, party{member: member, remaining: bal.Abs()})
		case bal.Sign() > 0:
			creditors = append(creditors, party{member: member, remaining: bal})
		}
	}
	if sum.Abs().Cmp(splitTolerance) > 0 {
		return nil, ErrUnbalancedLedger
	}

	sortByRemaining(debtors)
	sortByRemaining(creditors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		amount := d.remaining
		if c.remaining.Cmp(amount) < 0 {
			amount = c.remaining
		}

		if rounded := amount.RoundMinorUnit(); rounded.Sign() > 0 {
			transfers = append(transfers, Transfer{From: d.member, To: c.member, Amount: rounded})
		}

		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)

		if d.remaining.IsZero() {
			i++
		}
		if c.remaining.IsZero() {
			j++
		}
	}

	// The conservation check above guarantees both sides exhaust together up
	// to rounding tolerance; anything larger left over is a bug.
	for _, p := range append(debtors[i:], creditors[j:]...) {
		if p.remaining.Abs().Cmp(splitTolerance) > 0 {
			return nil, ErrUnbalancedLedger
		}
	}

	return transfers, nil
}

// sortByRemaining orders parties largest-remaining first, member id ascending
// on ties.
func sortByRemaining(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		switch parties[i].remaining.Cmp(parties[j].remaining) {
		case 1:
			return true
		case -1:
			return false
		default:
			return parties[i].member < parties[j].member
		}
	})
}
