// Package service implements the application services between transport and
// storage: group bookkeeping and the ledger computations over it.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// ErrValidation indicates request data that fails domain validation before it
// reaches storage or the engine.
var ErrValidation = errors.New("validation failed")

// GroupService handles group, expense and payment bookkeeping.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a new group. A group needs a name, at least one member
// and a settlement currency; the currency is fixed for the group's lifetime.
func (s *GroupService) CreateGroup(ctx context.Context, name, currency string, members []string) (*models.Group, error) {
	slog.Info("creating group", "name", name, "currency", currency, "members_count", len(members))

	if name == "" {
		return nil, fmt.Errorf("%w: group name required", ErrValidation)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: group needs at least one member", ErrValidation)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: settlement currency required", ErrValidation)
	}
	if dup := firstDuplicate(members); dup != "" {
		return nil, fmt.Errorf("%w: duplicate member %q", ErrValidation, dup)
	}

	group := &models.Group{Name: name, Currency: currency, Members: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("create group failed", "error", err)
		return nil, err
	}

	slog.Info("group created", "group_id", group.ID)
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// UpdateGroup updates a group's name and member list. Members may be added
// freely; removing a member who still appears on an expense would corrupt the
// ledger, so removal is refused while any expense or payment references them.
func (s *GroupService) UpdateGroup(ctx context.Context, groupID, name string, members []string) (*models.Group, error) {
	slog.Info("updating group", "group_id", groupID, "members_count", len(members))

	if len(members) == 0 {
		return nil, fmt.Errorf("%w: group needs at least one member", ErrValidation)
	}
	if dup := firstDuplicate(members); dup != "" {
		return nil, fmt.Errorf("%w: duplicate member %q", ErrValidation, dup)
	}

	current, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := s.checkRemovals(ctx, current, members); err != nil {
		return nil, err
	}

	group := &models.Group{ID: groupID, Name: name, Currency: current.Currency, Members: members}
	if group.Name == "" {
		group.Name = current.Name
	}
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		slog.Error("update group failed", "group_id", groupID, "error", err)
		return nil, err
	}

	return s.store.GetGroup(ctx, groupID)
}

// DeleteGroup removes a group and everything recorded under it.
func (s *GroupService) DeleteGroup(ctx context.Context, groupID string) error {
	slog.Info("deleting group", "group_id", groupID)
	return s.store.DeleteGroup(ctx, groupID)
}

// AddExpense validates and records a new expense. Validation uses the same
// rules the ledger engine applies, so a stored expense can never fail the
// next settlement run.
func (s *GroupService) AddExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	slog.Info("adding expense",
		"group_id", expense.GroupID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount.String(),
		"splits_count", len(expense.Splits),
	)

	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return nil, err
	}

	if err := ledger.ValidateExpense(group.Members, toLedgerExpense(expense)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("add expense failed", "group_id", expense.GroupID, "error", err)
		return nil, err
	}

	slog.Info("expense added", "expense_id", expense.ID)
	return expense, nil
}

// ListExpenses retrieves a group's expenses, newest first.
func (s *GroupService) ListExpenses(ctx context.Context, groupID string) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// DeleteExpense removes an expense from its group.
func (s *GroupService) DeleteExpense(ctx context.Context, expenseID string) error {
	slog.Info("deleting expense", "expense_id", expenseID)
	return s.store.DeleteExpense(ctx, expenseID)
}

// RecordPayment validates and records a settle-up payment between two
// members of the group.
func (s *GroupService) RecordPayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	slog.Info("recording payment",
		"group_id", payment.GroupID,
		"from_id", payment.FromID,
		"to_id", payment.ToID,
		"amount", payment.Amount.String(),
	)

	group, err := s.store.GetGroup(ctx, payment.GroupID)
	if err != nil {
		return nil, err
	}

	if payment.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if payment.FromID == payment.ToID {
		return nil, fmt.Errorf("%w: payment from and to must differ", ErrValidation)
	}
	if !group.HasMember(payment.FromID) {
		return nil, fmt.Errorf("%w: payer %q is not a group member", ErrValidation, payment.FromID)
	}
	if !group.HasMember(payment.ToID) {
		return nil, fmt.Errorf("%w: receiver %q is not a group member", ErrValidation, payment.ToID)
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		slog.Error("record payment failed", "group_id", payment.GroupID, "error", err)
		return nil, err
	}

	slog.Info("payment recorded", "payment_id", payment.ID)
	return payment, nil
}

// ListPayments retrieves a group's recorded payments, newest first.
func (s *GroupService) ListPayments(ctx context.Context, groupID string) ([]*models.Payment, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListPaymentsByGroup(ctx, groupID)
}

// checkRemovals refuses member removals that would orphan recorded expenses
// or payments.
func (s *GroupService) checkRemovals(ctx context.Context, current *models.Group, next []string) error {
	keep := make(map[string]bool, len(next))
	for _, m := range next {
		keep[m] = true
	}

	var removed []string
	for _, m := range current.Members {
		if !keep[m] {
			removed = append(removed, m)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, current.ID)
	if err != nil {
		return err
	}
	payments, err := s.store.ListPaymentsByGroup(ctx, current.ID)
	if err != nil {
		return err
	}

	referenced := make(map[string]bool)
	for _, e := range expenses {
		referenced[e.PayerID] = true
		for _, sp := range e.Splits {
			referenced[sp.MemberID] = true
		}
	}
	for _, p := range payments {
		referenced[p.FromID] = true
		referenced[p.ToID] = true
	}

	for _, m := range removed {
		if referenced[m] {
			return fmt.Errorf("%w: member %q still appears on recorded expenses or payments", ErrValidation, m)
		}
	}
	return nil
}

func firstDuplicate(members []string) string {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m] {
			return m
		}
		seen[m] = true
	}
	return ""
}
