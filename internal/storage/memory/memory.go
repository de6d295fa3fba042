package memory

// Package memory provides the in-memory bank store used for development and tests.
// A database-backed store can replace it without changing the contract.
import (
	"context"
	"sync"

	"github.com/tinoosan/volley/internal/bank"
)

// Store keeps bank records in insertion order and looks them up linearly.
// It is guarded by an RWMutex so every operation observes a consistent list.
type Store struct {
	mu    sync.RWMutex
	banks []bank.Bank
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{banks: make([]bank.Bank, 0)}
}

// Seed appends records without duplicate checks. For local dev/tests.
func (s *Store) Seed(banks ...bank.Bank) {
	s.mu.Lock()
	s.banks = append(s.banks, banks...)
	s.mu.Unlock()
}

// Reset drops every record.
func (s *Store) Reset() { s.mu.Lock(); s.banks = make([]bank.Bank, 0); s.mu.Unlock() }

// Len reports the number of records held.
func (s *Store) Len() int { s.mu.RLock(); defer s.mu.RUnlock(); return len(s.banks) }

// Ready always succeeds; the store has nothing to connect to.
func (s *Store) Ready(context.Context) error { return nil }

// ListBanks returns a copy of all records in insertion order.
func (s *Store) ListBanks(_ context.Context) ([]bank.Bank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bank.Bank, len(s.banks))
	copy(out, s.banks)
	return out, nil
}

// GetBank returns the record with the given account number.
func (s *Store) GetBank(_ context.Context, accountNumber string) (bank.Bank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(accountNumber)
	if i < 0 {
		return bank.Bank{}, bank.NotFound(accountNumber)
	}
	return s.banks[i], nil
}

// CreateBank appends b unless its account number is already taken.
func (s *Store) CreateBank(_ context.Context, b bank.Bank) (bank.Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(b.AccountNumber) >= 0 {
		return bank.Bank{}, bank.Duplicate(b.AccountNumber)
	}
	s.banks = append(s.banks, b)
	return b, nil
}

// UpdateBank removes the record keyed by b.AccountNumber and appends b.
func (s *Store) UpdateBank(_ context.Context, b bank.Bank) (bank.Bank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(b.AccountNumber)
	if i < 0 {
		return bank.Bank{}, bank.NotFound(b.AccountNumber)
	}
	s.removeLocked(i)
	s.banks = append(s.banks, b)
	return b, nil
}

// DeleteBank removes the record with the given account number.
func (s *Store) DeleteBank(_ context.Context, accountNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(accountNumber)
	if i < 0 {
		return bank.NotFound(accountNumber)
	}
	s.removeLocked(i)
	return nil
}

// indexLocked returns the position of accountNumber or -1. Caller must hold s.mu.
func (s *Store) indexLocked(accountNumber string) int {
	for i, b := range s.banks {
		if b.AccountNumber == accountNumber {
			return i
		}
	}
	return -1
}

// removeLocked deletes position i keeping the order of the rest. Caller must hold s.mu (write lock).
func (s *Store) removeLocked(i int) {
	copy(s.banks[i:], s.banks[i+1:])
	s.banks[len(s.banks)-1] = bank.Bank{}
	s.banks = s.banks[:len(s.banks)-1]
}
