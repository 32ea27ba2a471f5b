package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"finledger/internal/core"
)

func TestEncodeShape(t *testing.T) {
	w := core.NewWallet("alice")
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	w.AddTransaction(core.Transaction{
		ID: "t-1", Type: core.Income, Category: "Salary",
		Amount: core.Money{Cents: 100000}, At: at,
	})
	w.SetBudget("Food", core.Money{Cents: 30000})

	got := string(Encode(w))
	want := `{"owner":"alice","transactions":[` +
		`{"id":"t-1","type":"INCOME","category":"Salary","amount":1000.00,"note":null,"at":"2026-03-14T09:30:00"}` +
		`],"budgets":[{"category":"Food","limit":300.00}]}`
	if got != want {
		t.Fatalf("encoded blob mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	at1 := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	at2 := time.Date(2026, 2, 3, 8, 0, 59, 0, time.UTC)

	w := core.NewWallet("alice")
	w.AddTransaction(core.Transaction{
		ID: "id-1", Type: core.Income, Category: "Salary",
		Amount: core.Money{Cents: 123456}, Note: `monthly "bonus" included`, At: at1,
	})
	w.AddTransaction(core.Transaction{
		ID: "id-2", Type: core.Expense, Category: `tricky\cat,egory`,
		Amount: core.Money{Cents: 999}, Note: `braces }] and \"quotes\"`, At: at2,
	})
	w.AddTransaction(core.Transaction{
		ID: "id-3", Type: core.Expense, Category: "", // uncategorized
		Amount: core.Money{Cents: 50}, Note: "", At: at2,
	})
	w.SetBudget("Food", core.Money{Cents: 30000})
	w.SetBudget(`we"ird, budget\`, core.Money{Cents: 0})

	got, err := Decode("alice", Encode(w))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	wantTxns := w.Transactions()
	gotTxns := got.Transactions()
	if len(gotTxns) != len(wantTxns) {
		t.Fatalf("expected %d transactions, got %d", len(wantTxns), len(gotTxns))
	}
	for i := range wantTxns {
		a, b := wantTxns[i], gotTxns[i]
		if a.ID != b.ID || a.Type != b.Type || a.Category != b.Category ||
			a.Amount != b.Amount || a.Note != b.Note || !a.At.Equal(b.At) {
			t.Fatalf("transaction %d mismatch:\nwant %+v\n got %+v", i, a, b)
		}
	}

	wantBudgets := w.Budgets()
	gotBudgets := got.Budgets()
	if len(gotBudgets) != len(wantBudgets) {
		t.Fatalf("expected %d budgets, got %d", len(wantBudgets), len(gotBudgets))
	}
	for i := range wantBudgets {
		if wantBudgets[i] != gotBudgets[i] {
			t.Fatalf("budget %d mismatch: want %+v, got %+v", i, wantBudgets[i], gotBudgets[i])
		}
	}
	if got.Owner != "alice" {
		t.Fatalf("expected owner alice, got %q", got.Owner)
	}
}

func TestDecodeTolerance(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"empty arrays", `{"owner":"a","transactions":[],"budgets":[]}`},
		{"missing transactions", `{"owner":"a","budgets":[]}`},
		{"missing budgets", `{"owner":"a","transactions":[]}`},
		{"bare object", `{"owner":"a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Decode("a", []byte(tt.blob))
			if err != nil {
				t.Fatalf("expected tolerant decode, got %v", err)
			}
			if len(w.Transactions()) != 0 || len(w.Budgets()) != 0 {
				t.Fatalf("expected empty wallet, got %d txns %d budgets",
					len(w.Transactions()), len(w.Budgets()))
			}
		})
	}
}

func TestDecodeNullCategoryAndNote(t *testing.T) {
	blob := `{"owner":"a","transactions":[` +
		`{"id":"x","type":"EXPENSE","category":null,"amount":5.00,"note":null,"at":"2026-01-01T00:00:00"}` +
		`],"budgets":[]}`
	w, err := Decode("a", []byte(blob))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	txns := w.Transactions()
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].Category != "" || txns[0].Note != "" {
		t.Fatalf("null category/note must decode to absent values: %+v", txns[0])
	}
}

func TestDecodeCorrupt(t *testing.T) {
	const at = `"2026-01-01T00:00:00"`
	tests := []struct {
		name string
		blob string
	}{
		{"unknown type",
			`{"transactions":[{"id":"x","type":"REFUND","category":null,"amount":5.00,"note":null,"at":` + at + `}]}`},
		{"missing id",
			`{"transactions":[{"type":"INCOME","category":null,"amount":5.00,"note":null,"at":` + at + `}]}`},
		{"missing amount",
			`{"transactions":[{"id":"x","type":"INCOME","category":null,"note":null,"at":` + at + `}]}`},
		{"unparsable amount",
			`{"transactions":[{"id":"x","type":"INCOME","category":null,"amount":5..0,"note":null,"at":` + at + `}]}`},
		{"bad timestamp",
			`{"transactions":[{"id":"x","type":"INCOME","category":null,"amount":5.00,"note":null,"at":"yesterday"}]}`},
		{"missing budget limit",
			`{"budgets":[{"category":"Food"}]}`},
		{"budget category null",
			`{"budgets":[{"category":null,"limit":1.00}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode("a", []byte(tt.blob)); !errors.Is(err, ErrCorruptData) {
				t.Fatalf("expected ErrCorruptData, got %v", err)
			}
		})
	}
}

func TestPunctuationInsideTextDoesNotBreakScanning(t *testing.T) {
	// Notes full of the scanner's own control characters.
	w := core.NewWallet("a")
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	w.AddTransaction(core.Transaction{
		ID: "1", Type: core.Expense, Category: "misc",
		Amount: core.Money{Cents: 100}, Note: `{"amount":9999.99,"type":"INCOME"}]`, At: at,
	})
	w.AddTransaction(core.Transaction{
		ID: "2", Type: core.Expense, Category: "misc",
		Amount: core.Money{Cents: 200}, Note: "", At: at,
	})

	got, err := Decode("a", Encode(w))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	txns := got.Transactions()
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
	if txns[0].Amount.Cents != 100 || txns[0].Note != `{"amount":9999.99,"type":"INCOME"}]` {
		t.Fatalf("note containing format syntax must round-trip exactly: %+v", txns[0])
	}
}

func TestEncodeTruncatesToTwoDecimals(t *testing.T) {
	// Cents are the unit of storage, so precision beyond two decimals cannot
	// exist; the wire format always spells exactly two.
	w := core.NewWallet("a")
	w.SetBudget("b", core.Money{Cents: 1})
	if !strings.Contains(string(Encode(w)), `"limit":0.01`) {
		t.Fatalf("expected fixed two-decimal rendering, got %s", Encode(w))
	}
}

func TestParseCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"0.00", 0, true},
		{"1000.00", 100000, true},
		{"5", 500, true},
		{"0.5", 50, true},
		{"-50.25", -5025, true},
		{"12.345", 1234, true}, // third decimal dropped
		{"", 0, false},
		{"-", 0, false},
		{".", 0, false},
		{"1.2.3", 0, false},
		{"12a", 0, false},
	}
	for _, tc := range cases {
		got, err := parseCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q: expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}
