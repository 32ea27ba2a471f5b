package storage

import (
	"context"
	"fmt"
	"log/slog"

	"finledger/internal/codec"
	"finledger/internal/core"
)

// WalletArchive couples a blob store with the wallet codec: whole wallets in,
// whole wallets out, keyed by login.
type WalletArchive struct {
	blobs BlobStore
}

func NewWalletArchive(blobs BlobStore) *WalletArchive {
	return &WalletArchive{blobs: blobs}
}

// Save overwrites login's blob with the encoded wallet.
func (a *WalletArchive) Save(ctx context.Context, w *core.Wallet) error {
	blob := codec.Encode(w)
	if err := a.blobs.Save(ctx, w.Owner, blob); err != nil {
		return fmt.Errorf("save wallet %q: %w", w.Owner, err)
	}
	slog.InfoContext(ctx, "Wallet saved",
		"login", w.Owner,
		"transactions", len(w.Transactions()),
		"budgets", len(w.Budgets()),
		"bytes", len(blob))
	return nil
}

// Load returns ErrNotFound when no blob exists for login and
// codec.ErrCorruptData when one exists but cannot be decoded. Neither touches
// any in-memory state; the caller decides how to degrade.
func (a *WalletArchive) Load(ctx context.Context, login string) (*core.Wallet, error) {
	blob, err := a.blobs.Load(ctx, login)
	if err != nil {
		return nil, err
	}
	w, err := codec.Decode(login, blob)
	if err != nil {
		return nil, fmt.Errorf("load wallet %q: %w", login, err)
	}
	return w, nil
}

func (a *WalletArchive) Close() error {
	return a.blobs.Close()
}
