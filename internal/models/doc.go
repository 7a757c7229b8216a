// Package models defines the core domain models for tripledger.
//
// # Models
//
//   - Group: a set of members sharing expenses in one settlement currency
//   - Expense: a recorded group expense with per-member splits
//   - ExpenseSplit: one member's share of one expense
//   - Payment: a recorded settle-up transfer between two members
//
// Members are identified by stable id strings scoped to their group. All
// monetary fields use ledger.Money; raw floats never enter the domain layer.
//
// # Design Principles
//
//  1. Balances and transfers are derived by the ledger engine, never stored
//  2. Relationships use id strings, not pointers, to avoid circular references
//  3. The storage schema maps onto these types at the repository boundary
package models
