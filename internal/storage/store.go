// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tripledger/tripledger/internal/models"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for ledger record storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer. The ledger engine itself never touches
// a Store; services load records here and map them onto engine inputs.
type Store interface {
	// CreateGroup persists a new group. The group.ID field will be populated
	// by the store if empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID, including its member list.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroup replaces a group's name and member list.
	// The settlement currency is fixed for the group's lifetime and is not
	// updatable.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group and all of its expenses and payments.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateExpense persists a new expense with its splits.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID, including its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses for a group, splits included,
	// newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreatePayment persists a recorded settle-up payment.
	CreatePayment(ctx context.Context, payment *models.Payment) error

	// ListPaymentsByGroup retrieves all payments for a group, newest first.
	ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error)

	// Close releases any resources held by the store.
	Close() error
}
