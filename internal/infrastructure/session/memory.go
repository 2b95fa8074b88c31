package session

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryStore keeps sessions in process, bounded both by age and by count. When full,
// the least recently used session is evicted; expired ones are purged in the background.
type MemoryStore struct {
	lru *expirable.LRU[string, domain.Session]
}

func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{lru: expirable.NewLRU[string, domain.Session](maxEntries, nil, ttl)}
}

func (s *MemoryStore) Get(_ context.Context, participantID string) (*domain.Session, error) {
	stored, ok := s.lru.Get(participantID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return copySession(&stored), nil
}

// Save stores a copy of session and restarts its TTL.
func (s *MemoryStore) Save(_ context.Context, session *domain.Session) error {
	if session.ParticipantID == "" {
		return domain.ErrMissingParticipant
	}
	session.UpdatedAt = time.Now()
	s.lru.Add(session.ParticipantID, *copySession(session))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, participantID string) error {
	s.lru.Remove(participantID)
	return nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	return s.lru.Len(), nil
}

// copySession detaches the stored value from the caller's pointers.
func copySession(src *domain.Session) *domain.Session {
	dst := *src
	if src.SelectedItem != nil {
		item := *src.SelectedItem
		dst.SelectedItem = &item
	}
	if src.Cart != nil {
		cart := *src.Cart
		cart.Items = append([]domain.CartItem(nil), src.Cart.Items...)
		dst.Cart = &cart
	}
	return &dst
}
