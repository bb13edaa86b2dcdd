package repository

import (
	"context"
	"sync"
	"time"

	"slotgrid/backend/internal/model"
)

// memorySessionStore 进程内会话存储（Redis 不可用时的降级实现）
// 单机有效；进程重启后会话丢失，用户需重新保存槽位表
type memorySessionStore struct {
	mu  sync.RWMutex
	ttl time.Duration

	slotTables  map[string]memoryEntry[*model.SlotTableSnapshot]
	generations map[string]memoryEntry[*model.GenerationSnapshot]
}

type memoryEntry[T any] struct {
	value     T
	expiresAt time.Time
}

// NewMemorySessionStore 创建进程内会话存储
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		ttl:         ttl,
		slotTables:  make(map[string]memoryEntry[*model.SlotTableSnapshot]),
		generations: make(map[string]memoryEntry[*model.GenerationSnapshot]),
	}
}

func (s *memorySessionStore) SaveSlotTable(_ context.Context, sessionID string, snapshot *model.SlotTableSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slotTables[sessionID] = memoryEntry[*model.SlotTableSnapshot]{
		value:     snapshot,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *memorySessionStore) GetSlotTable(_ context.Context, sessionID string) (*model.SlotTableSnapshot, error) {
	s.mu.RLock()
	entry, ok := s.slotTables[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return entry.value, nil
}

func (s *memorySessionStore) SaveGeneration(_ context.Context, sessionID string, snapshot *model.GenerationSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[sessionID] = memoryEntry[*model.GenerationSnapshot]{
		value:     snapshot,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *memorySessionStore) GetGeneration(_ context.Context, sessionID string) (*model.GenerationSnapshot, error) {
	s.mu.RLock()
	entry, ok := s.generations[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return entry.value, nil
}

func (s *memorySessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slotTables, sessionID)
	delete(s.generations, sessionID)
	return nil
}
