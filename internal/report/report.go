// Package report renders engine query results as display text. Pure
// functions, no state, no I/O.
package report

import (
	"fmt"
	"sort"
	"strings"

	"finledger/internal/core"
	"finledger/internal/ledger"
)

// Summary renders the three totals as one block.
func Summary(income, expense, balance core.Money) string {
	return fmt.Sprintf("Total income: %s\nTotal expense: %s\nBalance: %s", income, expense, balance)
}

// ByCategory renders category sums under a title, one line per category,
// sorted ascending by name for stable output.
func ByCategory(title string, entries []core.CategoryAmount) string {
	sorted := append([]core.CategoryAmount(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":")
	for _, e := range sorted {
		b.WriteString("\n")
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(e.Amount.String())
	}
	return b.String()
}

// Selected renders category sums preserving the given order (used for
// filtered expense queries where input order matters).
func Selected(entries []core.CategoryAmount) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Name, e.Amount))
	}
	return strings.Join(lines, "\n")
}

// BudgetLines renders one line per budgeted category, keeping the engine's
// order.
func BudgetLines(statuses []ledger.BudgetStatus) string {
	lines := make([]string, 0, len(statuses))
	for _, s := range statuses {
		lines = append(lines, fmt.Sprintf("%s: limit %s, remaining %s", s.Category, s.Limit, s.Remaining))
	}
	return strings.Join(lines, "\n")
}
