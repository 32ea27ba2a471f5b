package export

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"finledger/internal/core"
)

func TestCSVExport(t *testing.T) {
	exporter, err := NewCSVExporter(t.TempDir())
	if err != nil {
		t.Fatalf("NewCSVExporter: %v", err)
	}

	at := time.Date(2026, 6, 15, 18, 45, 0, 0, time.UTC)
	w := core.NewWallet("alice")
	w.AddTransaction(core.Transaction{
		ID: "t-1", Type: core.Income, Category: "Salary",
		Amount: core.Money{Cents: 100000}, Note: "plain note", At: at,
	})
	w.AddTransaction(core.Transaction{
		ID: "t-2", Type: core.Expense, Category: "Food, drinks",
		Amount: core.Money{Cents: 2599}, Note: `he said "hi"`, At: at,
	})

	path, err := exporter.Export(context.Background(), w)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "id,type,category,amount,note,at" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != `t-1,INCOME,Salary,1000.00,plain note,2026-06-15T18:45:00` {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	// Comma and quote force quoting with doubled quotes.
	if lines[2] != `t-2,EXPENSE,"Food, drinks",25.99,"he said ""hi""",2026-06-15T18:45:00` {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

func TestCSVFieldQuoting(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`say "hi"`, `"say ""hi"""`},
	}
	for _, tc := range cases {
		if got := csvField(tc.in); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
