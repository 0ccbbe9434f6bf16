package delivery

import (
	"context"
	"sync"

	"github.com/pscheid92/huella/internal/domain"
)

// MemoryStore keeps the slot in process memory. The slot is held in encoded form so a
// round trip behaves exactly like the durable stores.
type MemoryStore struct {
	mu   sync.Mutex
	slot []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) ([]domain.QueueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DecodeSlot(s.slot)
}

func (s *MemoryStore) Save(_ context.Context, items []domain.QueueItem) error {
	data, err := EncodeSlot(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = data
	return nil
}

// Raw returns the encoded slot contents.
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.slot...)
}

// SetRaw replaces the encoded slot contents, e.g. to simulate a slot left by an earlier run.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = append([]byte(nil), data...)
}
