package persist

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrSlotNotFound is returned when loading or deleting a save slot that does
// not exist.
var ErrSlotNotFound = errors.New("save slot not found")

// SlotMeta describes one save slot.
type SlotMeta struct {
	Slot        string
	EntityCount int
	Checksum    []byte
	CreatedAt   time.Time
}

// Store is the save-slot capability record. The in-memory implementation
// backs tests; sqlite backs local play; postgres backs hosted worlds.
type Store interface {
	Save(ctx context.Context, meta SlotMeta, payload []byte) error
	Load(ctx context.Context, slot string) (SlotMeta, []byte, error)
	List(ctx context.Context) ([]SlotMeta, error)
	Delete(ctx context.Context, slot string) error
	Close() error
}

// MemoryStore keeps save slots in a map.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]memorySlot
}

type memorySlot struct {
	meta    SlotMeta
	payload []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]memorySlot)}
}

func (s *MemoryStore) Save(_ context.Context, meta SlotMeta, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.slots[meta.Slot] = memorySlot{meta: meta, payload: cp}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, slot string) (SlotMeta, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.slots[slot]
	if !ok {
		return SlotMeta{}, nil, ErrSlotNotFound
	}
	cp := make([]byte, len(m.payload))
	copy(cp, m.payload)
	return m.meta, cp, nil
}

func (s *MemoryStore) List(_ context.Context) ([]SlotMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SlotMeta, 0, len(s.slots))
	for _, m := range s.slots {
		out = append(out, m.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slots[slot]; !ok {
		return ErrSlotNotFound
	}
	delete(s.slots, slot)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
