// Package export pushes a wallet's transaction log to external, write-only
// destinations. Nothing written here is ever read back.
package export

import (
	"context"

	"finledger/internal/core"
)

// TransactionExporter writes all of a wallet's transactions to a destination
// and returns an opaque reference to what was written (a file path, a sheet
// range).
type TransactionExporter interface {
	Export(ctx context.Context, w *core.Wallet) (ref string, err error)
}
