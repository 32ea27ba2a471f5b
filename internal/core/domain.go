package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	Income  TxnType = "INCOME"
	Expense TxnType = "EXPENSE"
)

// Uncategorized is the display bucket for transactions that carry no
// category. It is a label used by aggregations, never a stored category.
const Uncategorized = "Uncategorized"

type (
	TxnType string

	// Money is an amount in integer cents. All arithmetic stays in cents;
	// decimal rendering happens only at the edges.
	Money struct {
		Cents int64
	}

	// Transaction is immutable once created. Constructors trust their
	// arguments; validation happens at the service boundary.
	Transaction struct {
		ID       string
		Type     TxnType
		Category string // empty means uncategorized
		Amount   Money
		Note     string // empty means no note
		At       time.Time
	}

	// CategoryBudget is a spending limit for one category. The category name
	// is the identity key; setting a budget again replaces the limit.
	CategoryBudget struct {
		Category string
		Limit    Money
	}

	// CategoryAmount represents an amount aggregated by category name.
	CategoryAmount struct {
		Name   string
		Amount Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrNegativeLimit = errors.New("negative limit")
)

// Valid reports whether t is one of the known transaction types.
func (t TxnType) Valid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

// NewTransaction builds a transaction with a fresh globally unique ID.
func NewTransaction(typ TxnType, category string, amount Money, note string, at time.Time) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Type:     typ,
		Category: category,
		Amount:   amount,
		Note:     note,
		At:       at,
	}
}

// Wallet holds one login's transaction log and budget map. Transactions keep
// recording order. Budgets keep insertion order too, so that encoding and
// alert iteration are deterministic.
type Wallet struct {
	Owner string

	txns      []Transaction
	budgets   []CategoryBudget
	budgetIdx map[string]int
}

func NewWallet(owner string) *Wallet {
	return &Wallet{
		Owner:     owner,
		budgetIdx: make(map[string]int),
	}
}

// AddTransaction appends t to the log. No validation here.
func (w *Wallet) AddTransaction(t Transaction) {
	w.txns = append(w.txns, t)
}

// SetBudget inserts or replaces the budget entry for category, last write wins.
func (w *Wallet) SetBudget(category string, limit Money) {
	if i, ok := w.budgetIdx[category]; ok {
		w.budgets[i].Limit = limit
		return
	}
	w.budgetIdx[category] = len(w.budgets)
	w.budgets = append(w.budgets, CategoryBudget{Category: category, Limit: limit})
}

// Budget returns the budget for category, if any.
func (w *Wallet) Budget(category string) (CategoryBudget, bool) {
	i, ok := w.budgetIdx[category]
	if !ok {
		return CategoryBudget{}, false
	}
	return w.budgets[i], true
}

// Transactions returns a copy of the log in recording order.
func (w *Wallet) Transactions() []Transaction {
	return append([]Transaction(nil), w.txns...)
}

// Budgets returns a copy of the budget entries in insertion order.
func (w *Wallet) Budgets() []CategoryBudget {
	return append([]CategoryBudget(nil), w.budgets...)
}

// Balance is income minus expense over the full log, recomputed on each call.
// Datasets are small; correctness over caching.
func (w *Wallet) Balance() Money {
	var income, expense int64
	for _, t := range w.txns {
		switch t.Type {
		case Income:
			income += t.Amount.Cents
		case Expense:
			expense += t.Amount.Cents
		}
	}
	return Money{Cents: income - expense}
}
