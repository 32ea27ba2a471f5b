package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"finledger/internal/amqp"
	"finledger/internal/auth"
	"finledger/internal/codec"
	"finledger/internal/core"
	"finledger/internal/export"
	"finledger/internal/ledger"
	"finledger/internal/report"
	"finledger/internal/storage"
)

const helpText = `Commands:
  register <login> <password>          create an account
  login <login> <password>             sign in and load the wallet
  logout                               save the wallet and sign out
  income <amount> <category> [note]    record an income
  expense <amount> <category> [note]   record an expense
  budget-set <category> <limit>        set a category budget (limit may be 0)
  budget-edit <category> <limit>       change a category budget
  summary                              total income, expense and balance
  income-by-cat                        income per category
  expense-by-cat                       expenses per category
  filter-expense <cat> [cat...]        expenses for the chosen categories
  budget-status                        limit and remainder per budget
  alerts                               budget and balance warnings
  transfer <to-login> <amount> [note]  move money to another account
  export-csv                           write the transaction log to a CSV file
  save                                 persist the wallet now
  help                                 this text
  exit                                 save everything and quit`

// App is the interactive shell. All reads and writes go through the injected
// reader/writer so the loop is testable without a terminal.
type App struct {
	auth    *auth.Service
	ledger  *ledger.Service
	wallets *ledger.MemoryStore
	archive *storage.WalletArchive
	alerts  *amqp.Client // nil when AMQP is not configured
	csv     export.TransactionExporter
	sheets  export.TransactionExporter // nil unless Google export is configured

	in  io.Reader
	out io.Writer

	current string // logged-in login, "" when signed out
}

// Options wires the collaborators of the shell.
type Options struct {
	Auth    *auth.Service
	Ledger  *ledger.Service
	Wallets *ledger.MemoryStore
	Archive *storage.WalletArchive
	Alerts  *amqp.Client
	CSV     export.TransactionExporter
	Sheets  export.TransactionExporter
	In      io.Reader
	Out     io.Writer
}

func NewApp(opts Options) *App {
	return &App{
		auth:    opts.Auth,
		ledger:  opts.Ledger,
		wallets: opts.Wallets,
		archive: opts.Archive,
		alerts:  opts.Alerts,
		csv:     opts.CSV,
		sheets:  opts.Sheets,
		in:      opts.In,
		out:     opts.Out,
	}
}

// Run reads commands until exit, EOF, or context cancellation.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, `Personal finance ledger. Type "help" for commands.`)

	scanner := bufio.NewScanner(a.in)
	for {
		if ctx.Err() != nil {
			break
		}
		fmt.Fprint(a.out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		cmd := strings.ToLower(args[0])
		if cmd == "exit" || cmd == "quit" {
			break
		}
		if err := a.dispatch(ctx, cmd, args[1:]); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}

	a.saveAll(ctx)
	fmt.Fprintln(a.out, "Bye.")
	return scanner.Err()
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, helpText)
		return nil
	case "register":
		return a.register(args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "income":
		return a.record(ctx, core.Income, args)
	case "expense":
		return a.record(ctx, core.Expense, args)
	case "budget-set":
		return a.budget(ctx, args, a.ledger.SetBudget)
	case "budget-edit":
		return a.budget(ctx, args, a.ledger.EditBudget)
	case "summary":
		return a.summary()
	case "income-by-cat":
		return a.byCategory(core.Income)
	case "expense-by-cat":
		return a.byCategory(core.Expense)
	case "filter-expense":
		return a.filterExpense(args)
	case "budget-status":
		return a.budgetStatus()
	case "alerts":
		return a.showAlerts()
	case "transfer":
		return a.transfer(ctx, args)
	case "export-csv":
		return a.export(ctx, a.csv, "CSV export not configured")
	case "export-sheets":
		return a.export(ctx, a.sheets, "Google Sheets export not configured")
	case "save":
		return a.save(ctx)
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (a *App) register(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: register <login> <password>")
	}
	if err := a.auth.Register(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered %q. You can log in now.\n", args[0])
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <login> <password>")
	}
	login, password := args[0], args[1]
	if !a.auth.Authenticate(login, password) {
		return errors.New("invalid login or password")
	}
	if a.current != "" && a.current != login {
		if err := a.logout(ctx); err != nil {
			return err
		}
	}
	a.loadWallet(ctx, login)
	a.current = login
	fmt.Fprintf(a.out, "Logged in as %q.\n", login)
	return nil
}

// loadWallet pulls login's wallet out of the archive into the in-memory
// store. Missing or corrupt data degrades to an empty wallet; the session
// keeps running either way.
func (a *App) loadWallet(ctx context.Context, login string) {
	w, err := a.archive.Load(ctx, login)
	switch {
	case err == nil:
		a.wallets.Save(w)
	case errors.Is(err, storage.ErrNotFound):
		a.wallets.GetOrCreate(login)
	case errors.Is(err, codec.ErrCorruptData):
		fmt.Fprintln(a.out, "Stored wallet data is corrupt; starting with an empty wallet.")
		slog.WarnContext(ctx, "Corrupt wallet data, starting empty", "login", login, "error", err)
		a.wallets.GetOrCreate(login)
	default:
		fmt.Fprintln(a.out, "Could not read the stored wallet; starting with an empty wallet.")
		slog.WarnContext(ctx, "Wallet load failed, starting empty", "login", login, "error", err)
		a.wallets.GetOrCreate(login)
	}
}

func (a *App) logout(ctx context.Context) error {
	if a.current == "" {
		return errors.New("not logged in")
	}
	if err := a.save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged out %q.\n", a.current)
	a.current = ""
	return nil
}

func (a *App) record(ctx context.Context, typ core.TxnType, args []string) error {
	if a.current == "" {
		return errors.New("log in first")
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: %s <amount> <category> [note]", strings.ToLower(string(typ)))
	}
	amount, err := core.ParseAmount(args[0])
	if err != nil {
		return err
	}
	category := args[1]
	note := strings.Join(args[2:], " ")

	switch typ {
	case core.Income:
		err = a.ledger.RecordIncome(ctx, a.current, category, amount, note, time.Now())
	case core.Expense:
		err = a.ledger.RecordExpense(ctx, a.current, category, amount, note, time.Now())
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Recorded %s of %s.\n", strings.ToLower(string(typ)), amount)

	a.notifyBudget(ctx, category)
	return nil
}

// notifyBudget prints the alerts touching the just-used category and ships
// the full alert list to the event bus. Publishing is best-effort.
func (a *App) notifyBudget(ctx context.Context, category string) {
	alerts := a.ledger.Alerts(a.current)
	marker := fmt.Sprintf("%q", category)
	for _, alert := range alerts {
		if strings.Contains(alert, marker) {
			fmt.Fprintln(a.out, alert)
		}
	}
	a.publishAlerts(ctx, alerts)
}

func (a *App) publishAlerts(ctx context.Context, alerts []string) {
	if a.alerts == nil {
		return
	}
	for _, alert := range alerts {
		if err := a.alerts.PublishAlert(ctx, a.current, alert); err != nil {
			slog.WarnContext(ctx, "Failed to publish alert", "login", a.current, "error", err)
			return
		}
	}
}

type budgetFunc func(ctx context.Context, login, category string, limit core.Money) error

func (a *App) budget(ctx context.Context, args []string, set budgetFunc) error {
	if a.current == "" {
		return errors.New("log in first")
	}
	if len(args) != 2 {
		return errors.New("usage: budget-set|budget-edit <category> <limit>")
	}
	limit, err := core.ParseLimit(args[1])
	if err != nil {
		return err
	}
	if err := set(ctx, a.current, args[0], limit); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Budget for %q is now %s.\n", args[0], limit)
	return nil
}

func (a *App) summary() error {
	if a.current == "" {
		return errors.New("log in first")
	}
	income := a.ledger.TotalIncome(a.current)
	expense := a.ledger.TotalExpense(a.current)
	fmt.Fprintln(a.out, report.Summary(income, expense, income.Sub(expense)))
	return nil
}

func (a *App) byCategory(typ core.TxnType) error {
	if a.current == "" {
		return errors.New("log in first")
	}
	if typ == core.Income {
		fmt.Fprintln(a.out, report.ByCategory("Income by category", a.ledger.IncomeByCategory(a.current)))
		return nil
	}
	fmt.Fprintln(a.out, report.ByCategory("Expenses by category", a.ledger.ExpenseByCategory(a.current)))
	return nil
}

func (a *App) filterExpense(args []string) error {
	if a.current == "" {
		return errors.New("log in first")
	}
	if len(args) == 0 {
		return errors.New("usage: filter-expense <category> [category...]")
	}
	entries, warnings := a.ledger.ExpenseBySelectedCategories(a.current, args)
	fmt.Fprintln(a.out, report.Selected(entries))
	for _, warning := range warnings {
		fmt.Fprintf(a.out, "warning: %s\n", warning)
	}
	return nil
}

func (a *App) budgetStatus() error {
	if a.current == "" {
		return errors.New("log in first")
	}
	statuses := a.ledger.BudgetStatus(a.current)
	if len(statuses) == 0 {
		fmt.Fprintln(a.out, "No budgets set.")
		return nil
	}
	fmt.Fprintln(a.out, report.BudgetLines(statuses))
	return nil
}

func (a *App) showAlerts() error {
	if a.current == "" {
		return errors.New("log in first")
	}
	alerts := a.ledger.Alerts(a.current)
	if len(alerts) == 0 {
		fmt.Fprintln(a.out, "No alerts.")
		return nil
	}
	for _, alert := range alerts {
		fmt.Fprintln(a.out, alert)
	}
	return nil
}

func (a *App) transfer(ctx context.Context, args []string) error {
	if a.current == "" {
		return errors.New("log in first")
	}
	if len(args) < 2 {
		return errors.New("usage: transfer <to-login> <amount> [note]")
	}
	to := args[0]
	amount, err := core.ParseAmount(args[1])
	if err != nil {
		return err
	}
	note := strings.Join(args[2:], " ")
	if note == "" {
		note = "Transfer"
	}
	// The receiving wallet is loaded first so the transfer lands on top of
	// its persisted history instead of a fresh wallet.
	if _, ok := a.wallets.FindByOwner(to); !ok {
		a.loadWallet(ctx, to)
	}
	if err := a.ledger.Transfer(ctx, a.current, to, amount, note); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Transferred %s to %q.\n", amount, to)
	return nil
}

func (a *App) export(ctx context.Context, exporter export.TransactionExporter, missing string) error {
	if a.current == "" {
		return errors.New("log in first")
	}
	if exporter == nil {
		return errors.New(missing)
	}
	w := a.wallets.GetOrCreate(a.current)
	ref, err := exporter.Export(ctx, w)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d transactions to %s.\n", len(w.Transactions()), ref)
	return nil
}

func (a *App) save(ctx context.Context) error {
	if a.current == "" {
		return errors.New("not logged in")
	}
	w := a.wallets.GetOrCreate(a.current)
	if err := a.archive.Save(ctx, w); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Wallet saved.")
	return nil
}

// saveAll persists every wallet touched this session, not just the current
// one, so transfer receivers are not lost on exit.
func (a *App) saveAll(ctx context.Context) {
	for _, w := range a.wallets.All() {
		if err := a.archive.Save(ctx, w); err != nil {
			fmt.Fprintf(a.out, "error: could not save wallet %q: %v\n", w.Owner, err)
		}
	}
}
