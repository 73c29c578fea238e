// Package mock provides an in-memory test double for [storage.Store].
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/bmehaboob/the-multilingual-mandi-sub000/pkg/storage"
)

var _ storage.Store = (*Store)(nil)

// Store is a thread-safe in-memory [storage.Store] for unit tests.
type Store struct {
	mu           sync.Mutex
	users        map[string]storage.User
	transactions map[string]storage.Transaction
	voiceprints  map[string]storage.Voiceprint
}

// New returns an empty, ready-to-use mock [Store].
func New() *Store {
	return &Store{
		users:        make(map[string]storage.User),
		transactions: make(map[string]storage.Transaction),
		voiceprints:  make(map[string]storage.Voiceprint),
	}
}

func (s *Store) CreateUser(_ context.Context, u storage.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = u
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (storage.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) SaveTransaction(_ context.Context, tx storage.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	s.transactions[tx.ID] = tx
	return nil
}

func (s *Store) ListTransactions(_ context.Context, userID string) ([]storage.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storage.Transaction
	for _, tx := range s.transactions {
		if tx.BuyerID == userID || tx.SellerID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *Store) SaveVoiceprint(_ context.Context, userID string, template storage.Voiceprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(storage.Voiceprint, len(template))
	copy(cp, template)
	s.voiceprints[userID] = cp
	return nil
}

func (s *Store) VerifyVoiceprint(_ context.Context, userID string, sample storage.Voiceprint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.voiceprints[userID]
	if !ok {
		return false, storage.ErrNotFound
	}
	if len(stored) != len(sample) {
		return false, nil
	}
	for i := range stored {
		if stored[i] != sample[i] {
			return false, nil
		}
	}
	return true, nil
}
