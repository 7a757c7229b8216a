package ledger

import (
	"errors"
	"testing"
)

func TestComputeSettlementEmptyGroup(t *testing.T) {
	if _, err := ComputeSettlement(nil, nil); !errors.Is(err, ErrEmptyGroup) {
		t.Errorf("error = %v, want ErrEmptyGroup", err)
	}
}

func TestComputeSettlementSingleMember(t *testing.T) {
	members := []string{"alice"}
	expenses := []Expense{expense(t, "e1", "alice", "40.00", split(t, "alice", "40.00"))}

	result, err := ComputeSettlement(members, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlement() failed: %v", err)
	}
	if got := result.Balances["alice"]; !got.IsZero() {
		t.Errorf("balance(alice) = %s, want 0.00", got)
	}
	if len(result.Transfers) != 0 {
		t.Errorf("got %d transfers, want 0", len(result.Transfers))
	}
	if result.TotalExpenses.String() != "40.00" {
		t.Errorf("total = %s, want 40.00", result.TotalExpenses)
	}
}

func TestComputeSettlementUnevenSplit(t *testing.T) {
	// 100.00 paid by alice, split 33.33/33.33/33.34. Carol's 33.34 remainder
	// sorts above bob's 33.33, so carol settles first.
	members := []string{"alice", "bob", "carol"}
	expenses := []Expense{expense(t, "e1", "alice", "100.00",
		split(t, "alice", "33.33"),
		split(t, "bob", "33.33"),
		split(t, "carol", "33.34"),
	)}

	result, err := ComputeSettlement(members, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlement() failed: %v", err)
	}

	wantBalances := map[string]string{"alice": "66.67", "bob": "-33.33", "carol": "-33.34"}
	for member, want := range wantBalances {
		if got := result.Balances[member].String(); got != want {
			t.Errorf("balance(%s) = %s, want %s", member, got, want)
		}
	}

	want := []wantTransfer{
		{"carol", "alice", "33.34"},
		{"bob", "alice", "33.33"},
	}
	if len(result.Transfers) != len(want) {
		t.Fatalf("got %d transfers %v, want %d", len(result.Transfers), result.Transfers, len(want))
	}
	for i, w := range want {
		got := result.Transfers[i]
		if got.From != w.from || got.To != w.to || got.Amount.String() != w.amount {
			t.Errorf("transfer[%d] = %s->%s %s, want %s->%s %s",
				i, got.From, got.To, got.Amount, w.from, w.to, w.amount)
		}
	}
}

func TestComputeSettlementThreePartyChain(t *testing.T) {
	// Alice owes 50, bob owes 30, carol fronted both. Exactly two transfers,
	// both directed at carol, summing to 80.
	members := []string{"alice", "bob", "carol"}
	expenses := []Expense{
		expense(t, "e1", "carol", "50.00", split(t, "alice", "50.00")),
		expense(t, "e2", "carol", "30.00", split(t, "bob", "30.00")),
	}

	result, err := ComputeSettlement(members, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlement() failed: %v", err)
	}
	if len(result.Transfers) != 2 {
		t.Fatalf("got %d transfers %v, want 2", len(result.Transfers), result.Transfers)
	}

	sum := Zero()
	for i, tr := range result.Transfers {
		if tr.To != "carol" {
			t.Errorf("transfer[%d] directed at %s, want carol", i, tr.To)
		}
		sum = sum.Add(tr.Amount)
	}
	if sum.String() != "80.00" {
		t.Errorf("transfers sum to %s, want 80.00", sum)
	}
}

func TestComputeSettlementIntegrityFailure(t *testing.T) {
	members := []string{"alice", "bob"}
	expenses := []Expense{expense(t, "e1", "alice", "100.00", split(t, "bob", "99.00"))}

	_, err := ComputeSettlement(members, expenses)
	var integrity *IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("error = %v, want *IntegrityError", err)
	}
	if integrity.ExpenseID != "e1" {
		t.Errorf("ExpenseID = %s, want e1", integrity.ExpenseID)
	}
}

func TestComputeSettlementIdempotent(t *testing.T) {
	members := []string{"alice", "bob", "carol", "dave"}
	expenses := []Expense{
		expense(t, "e1", "alice", "120.00",
			split(t, "alice", "30.00"), split(t, "bob", "30.00"),
			split(t, "carol", "30.00"), split(t, "dave", "30.00")),
		expense(t, "e2", "bob", "45.50",
			split(t, "alice", "22.75"), split(t, "carol", "22.75")),
	}

	first, err := ComputeSettlement(members, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlement() failed: %v", err)
	}
	second, err := ComputeSettlement(members, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlement() failed on recompute: %v", err)
	}

	if len(first.Transfers) != len(second.Transfers) {
		t.Fatalf("recompute produced %d transfers, first run %d", len(second.Transfers), len(first.Transfers))
	}
	for i := range first.Transfers {
		a, b := first.Transfers[i], second.Transfers[i]
		if a.From != b.From || a.To != b.To || a.Amount.Cmp(b.Amount) != 0 {
			t.Errorf("transfer[%d] differs across recomputes: %v vs %v", i, a, b)
		}
	}
	for member := range first.Balances {
		if first.Balances[member].Cmp(second.Balances[member]) != 0 {
			t.Errorf("balance(%s) differs across recomputes", member)
		}
	}
}

func TestSettlementSummaryFor(t *testing.T) {
	members := []string{"alice", "bob"}
	expenses := []Expense{expense(t, "e1", "alice", "60.00",
		split(t, "alice", "30.00"), split(t, "bob", "30.00"))}

	result, err := ComputeSettlement(members, expenses)
	if err != nil {
		t.Fatalf("ComputeSettlement() failed: %v", err)
	}

	summary, ok := result.SummaryFor("bob")
	if !ok {
		t.Fatal("SummaryFor(bob) reported missing member")
	}
	if summary.Balance.String() != "-30.00" {
		t.Errorf("bob balance = %s, want -30.00", summary.Balance)
	}
	if summary.TotalExpenses.String() != "60.00" {
		t.Errorf("total = %s, want 60.00", summary.TotalExpenses)
	}

	if _, ok := result.SummaryFor("mallory"); ok {
		t.Error("SummaryFor(mallory) should report missing member")
	}
}
