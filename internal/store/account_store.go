package store

import (
	"sync"
	"time"

	"github.com/spec-kit/account-console/internal/domain"
)

// AccountStore holds the most recently loaded account collection. The
// collection is only ever replaced wholesale; SetActive is the single
// in-place mutation and backs the row toggle.
type AccountStore struct {
	mu       sync.RWMutex
	accounts []domain.Account
	index    map[domain.AccountID]int
	loadedAt time.Time
	now      func() time.Time
}

// NewAccountStore returns an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		index: make(map[domain.AccountID]int),
		now:   time.Now,
	}
}

// Replace swaps in a new collection, keeping server order. Records whose id
// was already seen are dropped; the number dropped is returned.
func (s *AccountStore) Replace(accounts []domain.Account) int {
	next := make([]domain.Account, 0, len(accounts))
	index := make(map[domain.AccountID]int, len(accounts))
	dropped := 0
	for _, account := range accounts {
		if _, seen := index[account.ID]; seen {
			dropped++
			continue
		}
		index[account.ID] = len(next)
		next = append(next, account)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = next
	s.index = index
	s.loadedAt = s.now()
	return dropped
}

// Snapshot returns a copy of the collection in load order.
func (s *AccountStore) Snapshot() []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Get looks up one account by id.
func (s *AccountStore) Get(id domain.AccountID) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return domain.Account{}, false
	}
	return s.accounts[i], true
}

// Toggle negates the active flag of one account under a single lock and
// returns the updated record.
func (s *AccountStore) Toggle(id domain.AccountID) (domain.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return domain.Account{}, false
	}
	s.accounts[i].IsActive = !s.accounts[i].IsActive
	return s.accounts[i], true
}

// Len reports how many accounts are loaded.
func (s *AccountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// LoadedAt reports when the collection was last replaced; zero if never.
func (s *AccountStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
