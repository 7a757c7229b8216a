package ledger

import (
	"errors"
	"testing"
)

type wantTransfer struct {
	from, to, amount string
}

func balanceMap(t *testing.T, entries map[string]string) map[string]Money {
	t.Helper()
	out := make(map[string]Money, len(entries))
	for member, amount := range entries {
		out[member] = mustMoney(t, amount)
	}
	return out
}

func TestResolveTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]string
		want     []wantTransfer
		wantErr  error
	}{
		{
			name:     "all zero emits nothing",
			balances: map[string]string{"alice": "0.00", "bob": "0.00"},
			want:     nil,
		},
		{
			name:     "single debtor single creditor",
			balances: map[string]string{"alice": "50.00", "bob": "-50.00"},
			want:     []wantTransfer{{"bob", "alice", "50.00"}},
		},
		{
			name:     "largest debtor settled first",
			balances: map[string]string{"alice": "66.67", "bob": "-33.33", "carol": "-33.34"},
			want: []wantTransfer{
				{"carol", "alice", "33.34"},
				{"bob", "alice", "33.33"},
			},
		},
		{
			name:     "equal remainders tie break on member id",
			balances: map[string]string{"alice": "-10.00", "bob": "-10.00", "carol": "20.00"},
			want: []wantTransfer{
				{"alice", "carol", "10.00"},
				{"bob", "carol", "10.00"},
			},
		},
		{
			name:     "one debtor pays multiple creditors",
			balances: map[string]string{"alice": "-30.00", "bob": "20.00", "carol": "10.00"},
			want: []wantTransfer{
				{"alice", "bob", "20.00"},
				{"alice", "carol", "10.00"},
			},
		},
		{
			name:     "zero balance member never appears",
			balances: map[string]string{"alice": "15.00", "bob": "-15.00", "dave": "0.00"},
			want:     []wantTransfer{{"bob", "alice", "15.00"}},
		},
		{
			name:     "unbalanced input refused",
			balances: map[string]string{"alice": "5.00", "bob": "-2.00"},
			wantErr:  ErrUnbalancedLedger,
		},
		{
			name:     "one cent drift tolerated",
			balances: map[string]string{"alice": "10.00", "bob": "-9.99"},
			want:     []wantTransfer{{"bob", "alice", "9.99"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers, err := ResolveTransfers(balanceMap(t, tt.balances))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveTransfers() failed: %v", err)
			}
			if len(transfers) != len(tt.want) {
				t.Fatalf("got %d transfers %v, want %d", len(transfers), transfers, len(tt.want))
			}
			for i, want := range tt.want {
				got := transfers[i]
				if got.From != want.from || got.To != want.to || got.Amount.String() != want.amount {
					t.Errorf("transfer[%d] = %s->%s %s, want %s->%s %s",
						i, got.From, got.To, got.Amount, want.from, want.to, want.amount)
				}
				if got.From == got.To {
					t.Errorf("transfer[%d] is a self transfer: %v", i, got)
				}
				if got.Amount.Sign() <= 0 {
					t.Errorf("transfer[%d] amount %s is not positive", i, got.Amount)
				}
			}
		})
	}
}

func TestResolveTransfersSettlesBalances(t *testing.T) {
	// Applying every transfer must drive every balance to exactly zero.
	balances := balanceMap(t, map[string]string{
		"alice": "66.67",
		"bob":   "-33.33",
		"carol": "-33.34",
		"dave":  "72.50",
		"erin":  "-72.50",
	})

	transfers, err := ResolveTransfers(balances)
	if err != nil {
		t.Fatalf("ResolveTransfers() failed: %v", err)
	}

	applied := make(map[string]Money, len(balances))
	for member, bal := range balances {
		applied[member] = bal
	}
	for _, tr := range transfers {
		applied[tr.From] = applied[tr.From].Add(tr.Amount)
		applied[tr.To] = applied[tr.To].Sub(tr.Amount)
	}
	for member, bal := range applied {
		if !bal.IsZero() {
			t.Errorf("balance(%s) = %s after settlement, want 0.00", member, bal)
		}
	}
}

func TestResolveTransfersDeterministic(t *testing.T) {
	balances := map[string]string{
		"alice": "25.00", "bob": "-25.00",
		"carol": "40.00", "dave": "-40.00",
		"erin": "12.50", "frank": "-12.50",
	}

	first, err := ResolveTransfers(balanceMap(t, balances))
	if err != nil {
		t.Fatalf("ResolveTransfers() failed: %v", err)
	}
	for run := 0; run < 25; run++ {
		again, err := ResolveTransfers(balanceMap(t, balances))
		if err != nil {
			t.Fatalf("ResolveTransfers() failed on run %d: %v", run, err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d produced %d transfers, first run produced %d", run, len(again), len(first))
		}
		for i := range first {
			if again[i].From != first[i].From || again[i].To != first[i].To ||
				again[i].Amount.Cmp(first[i].Amount) != 0 {
				t.Fatalf("run %d transfer[%d] = %v, first run had %v", run, i, again[i], first[i])
			}
		}
	}
}
