package ledger

// Settlement is the full output of one engine run: every member's net
// balance, the transfers that zero those balances, and the sum of all
// expense amounts.
//
// Balances and transfers are derived from the expense set, never stored:
// any change to an expense invalidates a previously computed Settlement, and
// callers must recompute from the full current set rather than patch
// incrementally, because one new expense can change every member's optimal
// transfer pairing.
type Settlement struct {
	Balances      map[string]Money `json:"balances"`
	Transfers     []Transfer       `json:"transfers"`
	TotalExpenses Money            `json:"total_expenses"`
}

// Summary is a per-member view over an already-computed Settlement.
type Summary struct {
	Member        string `json:"member"`
	Balance       Money  `json:"balance"`
	TotalExpenses Money  `json:"total_expenses"`
}

// ComputeSettlement is the engine's single entry point. It aggregates the
// expenses into per-member balances, checks conservation, and resolves the
// settlement transfers.
//
// Failures are typed: ErrEmptyGroup for zero members, ErrInvalidAmount and
// *IntegrityError for bad expense data, ErrUnbalancedLedger for an expense
// set whose balances do not conserve. The computation is pure, so no failure
// is retriable with the same input.
func ComputeSettlement(members []string, expenses []Expense) (*Settlement, error) {
	if len(members) == 0 {
		return nil, ErrEmptyGroup
	}

	balances, total, err := AggregateBalances(members, expenses)
	if err != nil {
		return nil, err
	}

	transfers, err := ResolveTransfers(balances)
	if err != nil {
		return nil, err
	}

	return &Settlement{
		Balances:      balances,
		Transfers:     transfers,
		TotalExpenses: total,
	}, nil
}

// SummaryFor reads one member's totals out of an already-computed settlement.
// No pass over the raw expenses is made. The second return value is false if
// the member is not part of the settlement.
func (s *Settlement) SummaryFor(member string) (Summary, bool) {
	bal, ok := s.Balances[member]
	if !ok {
		return Summary{}, false
	}
	return Summary{Member: member, Balance: bal, TotalExpenses: s.TotalExpenses}, true
}
