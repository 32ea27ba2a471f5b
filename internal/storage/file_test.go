package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finledger/internal/codec"
	"finledger/internal/core"
)

func TestFileStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, err := store.Load(ctx, "alice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	if err := store.Save(ctx, "alice", []byte("first")); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A second save replaces the blob in full.
	if err := store.Save(ctx, "alice", []byte("second")); err != nil {
		t.Fatalf("save: %v", err)
	}

	blob, err := store.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(blob) != "second" {
		t.Fatalf("expected overwritten blob, got %q", blob)
	}

	if _, err := store.Load(ctx, "bob"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other login, got %v", err)
	}
}

func TestWalletArchiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	archive := NewWalletArchive(store)

	w := core.NewWallet("alice")
	at := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	w.AddTransaction(core.NewTransaction(core.Income, "Salary", core.Money{Cents: 100000}, `note with "quotes"`, at))
	w.SetBudget("Food", core.Money{Cents: 30000})

	if err := archive.Save(ctx, w); err != nil {
		t.Fatalf("archive save: %v", err)
	}
	got, err := archive.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("archive load: %v", err)
	}
	if got.Balance() != w.Balance() || len(got.Transactions()) != 1 || len(got.Budgets()) != 1 {
		t.Fatalf("reloaded wallet differs: %+v", got)
	}
}

func TestWalletArchiveCorruptBlob(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	archive := NewWalletArchive(store)

	bad := `{"transactions":[{"id":"x","type":"BOGUS","amount":1.00,"at":"2026-01-01T00:00:00"}]}`
	if err := os.WriteFile(filepath.Join(dir, "alice.json"), []byte(bad), 0644); err != nil {
		t.Fatalf("write corrupt blob: %v", err)
	}

	if _, err := archive.Load(ctx, "alice"); !errors.Is(err, codec.ErrCorruptData) {
		t.Fatalf("expected ErrCorruptData, got %v", err)
	}
}
