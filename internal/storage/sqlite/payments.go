package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/models"
)

// CreatePayment persists a recorded settle-up payment.
func (s *SQLiteStore) CreatePayment(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.CreatedAt == 0 {
		payment.CreatedAt = time.Now().Unix()
	}

	var note interface{}
	if payment.Note != "" {
		note = payment.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, group_id, from_id, to_id, amount_cents, note, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		payment.ID, payment.GroupID, payment.FromID, payment.ToID,
		payment.Amount.MinorUnits(), note, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// ListPaymentsByGroup retrieves all payments for a group, newest first.
func (s *SQLiteStore) ListPaymentsByGroup(ctx context.Context, groupID string) ([]*models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, from_id, to_id, amount_cents, note, created_at
		 FROM payments WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments by group: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		var cents int64
		var note sql.NullString
		if err := rows.Scan(&payment.ID, &payment.GroupID, &payment.FromID,
			&payment.ToID, &cents, &note, &payment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Amount = ledger.MoneyFromMinorUnits(cents)
		if note.Valid {
			payment.Note = note.String
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}
	return payments, nil
}
