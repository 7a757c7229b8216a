package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitPlaces is the number of decimal places in the settlement currency's
// minor unit (cents).
const minorUnitPlaces = 2

// Money is an immutable fixed-point currency amount. All ledger arithmetic
// goes through Money so that repeated aggregation of many small splits never
// accumulates floating-point drift.
//
// The zero value is a valid zero amount.
type Money struct {
	d decimal.Decimal
}

// MoneyFromString parses a decimal string like "33.34" into a Money.
// Returns ErrInvalidAmount if the string is not a finite decimal number.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{d: d}, nil
}

// MoneyFromMinorUnits builds a Money from a count of minor units,
// e.g. MoneyFromMinorUnits(10050) is 100.50.
// This is the preferred way to load amounts stored as integer cents.
func MoneyFromMinorUnits(n int64) Money {
	return Money{d: decimal.New(n, -minorUnitPlaces)}
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{d: m.d.Sub(other.d)}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{d: m.d.Abs()}
}

// Cmp compares m against other: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// Sign returns -1, 0 or +1 depending on the sign of m.
func (m Money) Sign() int {
	return m.d.Sign()
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// RoundMinorUnit rounds m to the currency's minor unit, half away from zero
// (1.005 rounds to 1.01, -1.005 rounds to -1.01). Banker's rounding is
// deliberately not used.
func (m Money) RoundMinorUnit() Money {
	return Money{d: m.d.Round(minorUnitPlaces)}
}

// MinorUnits returns m as a count of minor units, rounded half away from zero.
// This is the storage representation.
func (m Money) MinorUnits() int64 {
	return m.d.Round(minorUnitPlaces).Shift(minorUnitPlaces).IntPart()
}

// String formats m with exactly two decimal places, e.g. "66.70".
func (m Money) String() string {
	return m.d.StringFixed(minorUnitPlaces)
}

// MarshalJSON encodes m as a JSON string with two decimal places.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string or bare number into m.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := MoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
