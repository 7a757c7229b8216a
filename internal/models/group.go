package models

// Group represents a set of members who share expenses, e.g. the people on
// one trip. Each group settles in a single currency fixed at creation;
// there is no mixed-currency ledger.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Lisbon Trip", "Roommates").
	Name string

	// Currency is the ISO 4217 code of the group's settlement currency.
	// All expense and payment amounts in the group are in this currency.
	Currency string

	// Members is the list of member ids in this group. A group always has
	// at least one member.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether id is one of the group's members.
func (g *Group) HasMember(id string) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}
