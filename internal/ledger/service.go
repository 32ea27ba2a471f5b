// Package ledger implements the ledger engine: the only component that
// constructs transactions and budgets and enforces the business rules
// around them.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finledger/internal/core"
)

// TransferCategory is the fixed category both legs of a transfer land in.
const TransferCategory = "Transfers"

var ErrSelfTransfer = errors.New("cannot transfer to the same login")

// BudgetStatus is one line of the per-category budget report.
type BudgetStatus struct {
	Category  string
	Limit     core.Money
	Spent     core.Money
	Remaining core.Money
}

// Service mutates and queries wallets held by a WalletStore. Validation is
// eager and fails before any mutation; every mutation is saved back to the
// store immediately.
type Service struct {
	store WalletStore
}

func NewService(store WalletStore) *Service {
	return &Service{store: store}
}

// RecordIncome appends an income transaction to login's wallet.
func (s *Service) RecordIncome(ctx context.Context, login, category string, amount core.Money, note string, at time.Time) error {
	return s.record(ctx, core.Income, login, category, amount, note, at)
}

// RecordExpense appends an expense transaction to login's wallet.
func (s *Service) RecordExpense(ctx context.Context, login, category string, amount core.Money, note string, at time.Time) error {
	return s.record(ctx, core.Expense, login, category, amount, note, at)
}

func (s *Service) record(ctx context.Context, typ core.TxnType, login, category string, amount core.Money, note string, at time.Time) error {
	if err := amount.Validate(); err != nil {
		return fmt.Errorf("record %s: %w", strings.ToLower(string(typ)), err)
	}
	if err := validateCategory(category); err != nil {
		return fmt.Errorf("record %s: %w", strings.ToLower(string(typ)), err)
	}
	w := s.store.GetOrCreate(login)
	w.AddTransaction(core.NewTransaction(typ, category, amount, note, at))
	s.store.Save(w)

	slog.InfoContext(ctx, "Transaction recorded",
		"login", login,
		"type", typ,
		"category", category,
		"amount", amount.String())
	return nil
}

// SetBudget inserts or replaces the budget entry for category.
func (s *Service) SetBudget(ctx context.Context, login, category string, limit core.Money) error {
	if err := validateCategory(category); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	if limit.Cents < 0 {
		return fmt.Errorf("set budget: %w", core.ErrNegativeLimit)
	}
	w := s.store.GetOrCreate(login)
	w.SetBudget(category, limit)
	s.store.Save(w)

	slog.InfoContext(ctx, "Budget set",
		"login", login,
		"category", category,
		"limit", limit.String())
	return nil
}

// EditBudget has the same contract as SetBudget: replace, no merge.
func (s *Service) EditBudget(ctx context.Context, login, category string, limit core.Money) error {
	return s.SetBudget(ctx, login, category, limit)
}

// Transfer records an expense on the sender and a matching income on the
// receiver, both in the fixed transfer category.
func (s *Service) Transfer(ctx context.Context, from, to string, amount core.Money, note string) error {
	if from == to {
		return fmt.Errorf("transfer: %w", ErrSelfTransfer)
	}
	if err := amount.Validate(); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	now := time.Now()
	if err := s.RecordExpense(ctx, from, TransferCategory, amount, note+" -> "+to, now); err != nil {
		return err
	}
	return s.RecordIncome(ctx, to, TransferCategory, amount, note+" <- "+from, now)
}

// TotalIncome sums income transaction amounts.
func (s *Service) TotalIncome(login string) core.Money {
	return s.totalByType(login, core.Income)
}

// TotalExpense sums expense transaction amounts.
func (s *Service) TotalExpense(login string) core.Money {
	return s.totalByType(login, core.Expense)
}

func (s *Service) totalByType(login string, typ core.TxnType) core.Money {
	var sum int64
	for _, t := range s.store.GetOrCreate(login).Transactions() {
		if t.Type == typ {
			sum += t.Amount.Cents
		}
	}
	return core.Money{Cents: sum}
}

// IncomeByCategory sums income amounts per category, uncategorized ones under
// the placeholder label. Categories appear in order of first occurrence in
// the log, which keeps the output deterministic.
func (s *Service) IncomeByCategory(login string) []core.CategoryAmount {
	return s.byCategory(login, core.Income)
}

// ExpenseByCategory mirrors IncomeByCategory for expenses.
func (s *Service) ExpenseByCategory(login string) []core.CategoryAmount {
	return s.byCategory(login, core.Expense)
}

func (s *Service) byCategory(login string, typ core.TxnType) []core.CategoryAmount {
	sums, order := s.categorySums(login, typ)
	out := make([]core.CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, core.CategoryAmount{Name: name, Amount: core.Money{Cents: sums[name]}})
	}
	return out
}

func (s *Service) categorySums(login string, typ core.TxnType) (map[string]int64, []string) {
	sums := make(map[string]int64)
	var order []string
	for _, t := range s.store.GetOrCreate(login).Transactions() {
		if t.Type != typ {
			continue
		}
		name := t.Category
		if name == "" {
			name = core.Uncategorized
		}
		if _, seen := sums[name]; !seen {
			order = append(order, name)
		}
		sums[name] += t.Amount.Cents
	}
	return sums, order
}

// ExpenseBySelectedCategories sums expenses per requested category, preserving
// the input order (duplicates and unknown names included). Categories with no
// matching expenses yield a zero sum plus an advisory warning, never an error.
func (s *Service) ExpenseBySelectedCategories(login string, categories []string) ([]core.CategoryAmount, []string) {
	txns := s.store.GetOrCreate(login).Transactions()
	out := make([]core.CategoryAmount, 0, len(categories))
	var warnings []string
	for _, c := range categories {
		var sum int64
		for _, t := range txns {
			if t.Type == core.Expense && t.Category == c {
				sum += t.Amount.Cents
			}
		}
		if sum == 0 {
			warnings = append(warnings, fmt.Sprintf("no expenses recorded for category %q", c))
		}
		out = append(out, core.CategoryAmount{Name: c, Amount: core.Money{Cents: sum}})
	}
	return out, warnings
}

// BudgetStatus reports limit, spent, and remaining for every budgeted
// category, in budget insertion order. Categories without a budget are
// omitted even when they have spending.
func (s *Service) BudgetStatus(login string) []BudgetStatus {
	w := s.store.GetOrCreate(login)
	spent, _ := s.categorySums(login, core.Expense)
	var out []BudgetStatus
	for _, b := range w.Budgets() {
		sp := spent[b.Category]
		out = append(out, BudgetStatus{
			Category:  b.Category,
			Limit:     b.Limit,
			Spent:     core.Money{Cents: sp},
			Remaining: core.Money{Cents: b.Limit.Cents - sp},
		})
	}
	return out
}

// Alerts produces advisory messages in a fixed order: overspent income first,
// then per-budget threshold alerts in budget insertion order, then the exact
// zero-balance notice. Thresholds: spent at or above 80% of the limit but
// below it is "near limit"; spent strictly above the limit is "over limit";
// spent exactly at the limit triggers neither.
func (s *Service) Alerts(login string) []string {
	w := s.store.GetOrCreate(login)
	var alerts []string

	income := s.TotalIncome(login)
	expense := s.TotalExpense(login)
	if expense.Cents > income.Cents {
		alerts = append(alerts, fmt.Sprintf("Expenses exceed income. Current balance: %s", income.Sub(expense)))
	}

	spent, _ := s.categorySums(login, core.Expense)
	for _, b := range w.Budgets() {
		sp := spent[b.Category]
		// sp >= 0.8*limit, kept in integer arithmetic
		if sp*5 >= b.Limit.Cents*4 && sp < b.Limit.Cents {
			alerts = append(alerts, fmt.Sprintf("Reached 80%% of the %q budget: %s/%s",
				b.Category, core.Money{Cents: sp}, b.Limit))
		}
		if sp > b.Limit.Cents {
			alerts = append(alerts, fmt.Sprintf("Budget exceeded for %q: %s/%s",
				b.Category, core.Money{Cents: sp}, b.Limit))
		}
	}

	if w.Balance().Cents == 0 {
		alerts = append(alerts, "Balance is zero.")
	}
	return alerts
}

func validateCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return core.ErrEmptyCategory
	}
	return nil
}
