package core

import (
	"testing"
	"time"
)

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -10}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestTxnTypeValid(t *testing.T) {
	if !Income.Valid() || !Expense.Valid() {
		t.Fatalf("known types must be valid")
	}
	if TxnType("TRANSFER").Valid() {
		t.Fatalf("unknown type must be invalid")
	}
}

func TestNewTransactionIDsUnique(t *testing.T) {
	at := time.Now()
	a := NewTransaction(Income, "Salary", Money{Cents: 100}, "", at)
	b := NewTransaction(Income, "Salary", Money{Cents: 100}, "", at)
	if a.ID == "" || b.ID == "" {
		t.Fatalf("transaction IDs must be set")
	}
	if a.ID == b.ID {
		t.Fatalf("transaction IDs must be unique, got %q twice", a.ID)
	}
}

func TestWalletBalance(t *testing.T) {
	w := NewWallet("alice")
	at := time.Now()
	w.AddTransaction(NewTransaction(Income, "Salary", Money{Cents: 100000}, "", at))
	w.AddTransaction(NewTransaction(Expense, "Food", Money{Cents: 25000}, "", at))
	w.AddTransaction(NewTransaction(Expense, "Food", Money{Cents: 5000}, "", at))

	if got := w.Balance(); got.Cents != 70000 {
		t.Fatalf("expected balance 70000 cents, got %d", got.Cents)
	}
	if n := len(w.Transactions()); n != 3 {
		t.Fatalf("expected 3 transactions, got %d", n)
	}
}

func TestWalletBalanceOrderIndependent(t *testing.T) {
	at := time.Now()
	amounts := []struct {
		typ   TxnType
		cents int64
	}{
		{Income, 500}, {Expense, 200}, {Income, 100}, {Expense, 150},
	}

	forward := NewWallet("a")
	for _, a := range amounts {
		forward.AddTransaction(NewTransaction(a.typ, "c", Money{Cents: a.cents}, "", at))
	}
	backward := NewWallet("b")
	for i := len(amounts) - 1; i >= 0; i-- {
		backward.AddTransaction(NewTransaction(amounts[i].typ, "c", Money{Cents: amounts[i].cents}, "", at))
	}

	if forward.Balance() != backward.Balance() {
		t.Fatalf("balance must not depend on recording order: %v vs %v", forward.Balance(), backward.Balance())
	}
	if forward.Balance().Cents != 250 {
		t.Fatalf("expected 250 cents, got %d", forward.Balance().Cents)
	}
}

func TestWalletSetBudgetReplaces(t *testing.T) {
	w := NewWallet("alice")
	w.SetBudget("Food", Money{Cents: 30000})
	w.SetBudget("Transport", Money{Cents: 10000})
	w.SetBudget("Food", Money{Cents: 40000})

	budgets := w.Budgets()
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	// Insertion order is preserved, the replaced entry keeps its slot.
	if budgets[0].Category != "Food" || budgets[0].Limit.Cents != 40000 {
		t.Fatalf("unexpected first budget: %+v", budgets[0])
	}
	if budgets[1].Category != "Transport" {
		t.Fatalf("unexpected second budget: %+v", budgets[1])
	}

	b, ok := w.Budget("Food")
	if !ok || b.Limit.Cents != 40000 {
		t.Fatalf("Budget lookup returned %+v ok=%v", b, ok)
	}
	if _, ok := w.Budget("Rent"); ok {
		t.Fatalf("Budget lookup for unknown category must report absence")
	}
}

func TestWalletViewsAreCopies(t *testing.T) {
	w := NewWallet("alice")
	w.AddTransaction(NewTransaction(Income, "Salary", Money{Cents: 100}, "", time.Now()))
	w.SetBudget("Food", Money{Cents: 100})

	txns := w.Transactions()
	txns[0].Amount = Money{Cents: 999999}
	budgets := w.Budgets()
	budgets[0].Limit = Money{Cents: 999999}

	if w.Balance().Cents != 100 {
		t.Fatalf("mutating the transactions view must not affect the wallet")
	}
	if b, _ := w.Budget("Food"); b.Limit.Cents != 100 {
		t.Fatalf("mutating the budgets view must not affect the wallet")
	}
}
