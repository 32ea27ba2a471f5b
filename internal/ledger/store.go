package ledger

import (
	"sort"
	"sync"

	"finledger/internal/core"
)

// WalletStore is a keyed upsert over wallets, last write wins, no versioning.
// Creation on first reference is part of the contract (GetOrCreate), not a
// hidden side effect of lookups.
type WalletStore interface {
	FindByOwner(login string) (*core.Wallet, bool)
	GetOrCreate(login string) *core.Wallet
	Save(w *core.Wallet)
}

// MemoryStore keeps wallets in a process-wide map. The model assumes a single
// writer per login; the mutex serializes access so the store stays safe when
// background workers read it.
type MemoryStore struct {
	mu      sync.Mutex
	wallets map[string]*core.Wallet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{wallets: make(map[string]*core.Wallet)}
}

func (s *MemoryStore) FindByOwner(login string) (*core.Wallet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[login]
	return w, ok
}

func (s *MemoryStore) GetOrCreate(login string) *core.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.wallets[login]; ok {
		return w
	}
	w := core.NewWallet(login)
	s.wallets[login] = w
	return w
}

func (s *MemoryStore) Save(w *core.Wallet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[w.Owner] = w
}

// All returns every wallet currently held, sorted by owner.
func (s *MemoryStore) All() []*core.Wallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*core.Wallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Owner < out[j].Owner })
	return out
}
