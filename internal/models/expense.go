package models

import "github.com/tripledger/tripledger/internal/ledger"

// Expense represents one recorded group expense: who paid, how much, and how
// the amount divides among members. The sum of the splits must equal the
// expense amount to the currency's minor unit; the ledger engine rejects
// records that violate this rather than correcting them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PayerID is the member who paid the expense. The payer need not owe a
	// split of their own expense.
	PayerID string

	// Description is a human-readable label (e.g. "Dinner", "Taxi").
	Description string

	// Amount is the full expense amount in the group's currency.
	Amount ledger.Money

	// Splits states how the amount divides among members. Non-empty.
	Splits []ExpenseSplit

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit is one member's share of one expense. A member need not be
// the payer to owe a split.
type ExpenseSplit struct {
	// MemberID is the member who owes this share.
	MemberID string

	// Amount is the share owed, in the group's currency.
	Amount ledger.Money
}
