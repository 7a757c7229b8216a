package models

import "github.com/tripledger/tripledger/internal/ledger"

// Payment represents a settle-up transfer recorded between two members.
// Payments reduce existing debt: the payer's net position improves by Amount
// and the receiver's decreases by the same.
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// GroupID is the group this payment belongs to.
	GroupID string

	// FromID is the member who paid (debtor settling up).
	FromID string

	// ToID is the member who received the payment.
	ToID string

	// Amount is the payment amount in the group's currency.
	Amount ledger.Money

	// Note is an optional description for the payment.
	Note string

	// CreatedAt is the Unix timestamp when the payment was recorded.
	CreatedAt int64
}
