package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finledger/internal/core"
)

const csvHeader = "id,type,category,amount,note,at"

// CSVExporter writes one delimited file per login into a directory.
type CSVExporter struct {
	dir string
}

func NewCSVExporter(dir string) (*CSVExporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &CSVExporter{dir: dir}, nil
}

func (e *CSVExporter) Export(_ context.Context, w *core.Wallet) (string, error) {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\n")
	for _, t := range w.Transactions() {
		fields := []string{
			t.ID,
			string(t.Type),
			csvField(t.Category),
			t.Amount.String(),
			csvField(t.Note),
			t.At.Format("2006-01-02T15:04:05"),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}

	path := filepath.Join(e.dir, w.Owner+"-txns.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("write csv export: %w", err)
	}
	return path, nil
}

// csvField quotes a value only when it contains a comma or a quote, doubling
// embedded quotes. Empty (absent) values stay empty.
func csvField(s string) string {
	if strings.ContainsAny(s, `,"`) {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
