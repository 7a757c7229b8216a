package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func money(t *testing.T, s string) ledger.Money {
	t.Helper()
	m, err := ledger.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestGroupCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		Name:     "Lisbon Trip",
		Currency: "EUR",
		Members:  []string{"alice", "bob", "carol"},
	}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NotEmpty(t, group.ID)
	require.NotZero(t, group.CreatedAt)

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Equal(t, "Lisbon Trip", got.Name)
	require.Equal(t, "EUR", got.Currency)
	require.Equal(t, []string{"alice", "bob", "carol"}, got.Members)

	got.Name = "Porto Trip"
	got.Members = []string{"alice", "bob", "carol", "dave"}
	require.NoError(t, store.UpdateGroup(ctx, got))

	updated, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Equal(t, "Porto Trip", updated.Name)
	require.Len(t, updated.Members, 4)
	// Currency stays fixed across updates.
	require.Equal(t, "EUR", updated.Currency)

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 1)

	require.NoError(t, store.DeleteGroup(ctx, group.ID))
	_, err = store.GetGroup(ctx, group.ID)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestGroupNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetGroup(ctx, "missing")
	require.True(t, errors.Is(err, storage.ErrNotFound))
	require.True(t, errors.Is(store.DeleteGroup(ctx, "missing"), storage.ErrNotFound))
	require.True(t, errors.Is(store.UpdateGroup(ctx, &models.Group{ID: "missing"}), storage.ErrNotFound))
}

func TestExpenseRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", Currency: "USD", Members: []string{"alice", "bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	expense := &models.Expense{
		GroupID:     group.ID,
		PayerID:     "alice",
		Description: "Dinner",
		Amount:      money(t, "100.00"),
		Splits: []models.ExpenseSplit{
			{MemberID: "alice", Amount: money(t, "33.33")},
			{MemberID: "bob", Amount: money(t, "66.67")},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.PayerID)
	require.Equal(t, "Dinner", got.Description)
	// Amounts must round-trip exactly through the minor-unit columns.
	require.Equal(t, "100.00", got.Amount.String())
	require.Len(t, got.Splits, 2)
	require.Equal(t, "alice", got.Splits[0].MemberID)
	require.Equal(t, "33.33", got.Splits[0].Amount.String())
	require.Equal(t, "66.67", got.Splits[1].Amount.String())

	expenses, err := store.ListExpensesByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	require.Len(t, expenses[0].Splits, 2)

	require.NoError(t, store.DeleteExpense(ctx, expense.ID))
	_, err = store.GetExpense(ctx, expense.ID)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestExpensesCascadeWithGroup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", Currency: "USD", Members: []string{"alice", "bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	expense := &models.Expense{
		GroupID: group.ID,
		PayerID: "alice",
		Amount:  money(t, "10.00"),
		Splits:  []models.ExpenseSplit{{MemberID: "bob", Amount: money(t, "10.00")}},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	require.NoError(t, store.DeleteGroup(ctx, group.ID))

	_, err := store.GetExpense(ctx, expense.ID)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPaymentRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Trip", Currency: "USD", Members: []string{"alice", "bob"}}
	require.NoError(t, store.CreateGroup(ctx, group))

	payment := &models.Payment{
		GroupID: group.ID,
		FromID:  "bob",
		ToID:    "alice",
		Amount:  money(t, "25.50"),
		Note:    "venmo",
	}
	require.NoError(t, store.CreatePayment(ctx, payment))
	require.NotEmpty(t, payment.ID)

	payments, err := store.ListPaymentsByGroup(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, "bob", payments[0].FromID)
	require.Equal(t, "alice", payments[0].ToID)
	require.Equal(t, "25.50", payments[0].Amount.String())
	require.Equal(t, "venmo", payments[0].Note)
}
