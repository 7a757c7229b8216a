package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/storage"
)

// LedgerService runs the settlement engine over a group's stored records.
// It loads the snapshot, maps storage rows onto the engine's input types and
// invokes the pure computation; the engine itself never touches storage.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// ComputeSettlement loads the group's full current expense and payment set
// and computes balances and settlement transfers from scratch. Results are
// never cached across mutations; a single new expense can change every
// member's optimal transfer pairing.
func (s *LedgerService) ComputeSettlement(ctx context.Context, groupID string) (*ledger.Settlement, error) {
	slog.Info("computing settlement", "group_id", groupID)

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	// Expenses and payments are independent reads; fetch them in parallel.
	var (
		expenses []*models.Expense
		payments []*models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpensesByGroup(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.store.ListPaymentsByGroup(gctx, groupID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("loading ledger records failed", "group_id", groupID, "error", err)
		return nil, err
	}

	result, err := ledger.ComputeSettlement(group.Members, toLedgerInput(expenses, payments))
	if err != nil {
		slog.Error("settlement computation failed", "group_id", groupID, "error", err)
		return nil, err
	}

	// Payments ride through the engine as one-split expenses to adjust
	// balances, but they are not spending; keep them out of the total.
	for _, p := range payments {
		result.TotalExpenses = result.TotalExpenses.Sub(p.Amount)
	}

	slog.Info("settlement computed",
		"group_id", groupID,
		"expenses_count", len(expenses),
		"payments_count", len(payments),
		"transfers_count", len(result.Transfers),
	)
	return result, nil
}

// MemberSummary computes the settlement and reads one member's totals out of
// it. The second return value is false if the member is not in the group.
func (s *LedgerService) MemberSummary(ctx context.Context, groupID, memberID string) (ledger.Summary, bool, error) {
	result, err := s.ComputeSettlement(ctx, groupID)
	if err != nil {
		return ledger.Summary{}, false, err
	}
	summary, ok := result.SummaryFor(memberID)
	return summary, ok, nil
}

// toLedgerInput maps stored records onto engine inputs. A recorded payment
// enters the ledger as a one-split expense: the payer fronted the amount and
// the receiver owes all of it, which raises the payer's balance and lowers
// the receiver's by exactly the payment — the settle-up semantics.
func toLedgerInput(expenses []*models.Expense, payments []*models.Payment) []ledger.Expense {
	out := make([]ledger.Expense, 0, len(expenses)+len(payments))
	for _, e := range expenses {
		out = append(out, toLedgerExpense(e))
	}
	for _, p := range payments {
		out = append(out, ledger.Expense{
			ID:     p.ID,
			Payer:  p.FromID,
			Amount: p.Amount,
			Splits: []ledger.Split{{Member: p.ToID, Amount: p.Amount}},
		})
	}
	return out
}

func toLedgerExpense(e *models.Expense) ledger.Expense {
	splits := make([]ledger.Split, len(e.Splits))
	for i, sp := range e.Splits {
		splits[i] = ledger.Split{Member: sp.MemberID, Amount: sp.Amount}
	}
	return ledger.Expense{ID: e.ID, Payer: e.PayerID, Amount: e.Amount, Splits: splits}
}
