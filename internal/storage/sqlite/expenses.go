package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// CreateExpense persists a new expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, payer_id, description, amount_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.PayerID, expense.Description,
		expense.Amount.MinorUnits(), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, sp := range expense.Splits {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id, amount_cents) VALUES (?, ?, ?)",
			expense.ID, sp.MemberID, sp.Amount.MinorUnits(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var cents int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, payer_id, description, amount_cents, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.PayerID, &expense.Description,
		&cents, &expense.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = ledger.MoneyFromMinorUnits(cents)

	splits, err := s.expenseSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	expense.Splits = splits

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group with their splits,
// newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, payer_id, description, amount_cents, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var cents int64
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.PayerID,
			&expense.Description, &cents, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = ledger.MoneyFromMinorUnits(cents)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.expenseSplits(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}

	return expenses, nil
}

// DeleteExpense removes an expense; its splits cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// expenseSplits loads the splits for one expense.
func (s *SQLiteStore) expenseSplits(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, amount_cents FROM expense_splits WHERE expense_id = ? ORDER BY member_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		var sp models.ExpenseSplit
		var cents int64
		if err := rows.Scan(&sp.MemberID, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		sp.Amount = ledger.MoneyFromMinorUnits(cents)
		splits = append(splits, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}
