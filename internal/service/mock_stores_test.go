package service

import (
	"context"

	"slotgrid/backend/internal/model"
	"slotgrid/backend/internal/repository"
)

// ── 手写 Mock：会话存储 ──

type mockSessionStore struct {
	slotTables  map[string]*model.SlotTableSnapshot
	generations map[string]*model.GenerationSnapshot

	// 错误注入
	saveSlotTableErr  error
	getSlotTableErr   error
	saveGenerationErr error
	getGenerationErr  error
	clearErr          error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{
		slotTables:  make(map[string]*model.SlotTableSnapshot),
		generations: make(map[string]*model.GenerationSnapshot),
	}
}

func (m *mockSessionStore) SaveSlotTable(_ context.Context, sessionID string, snapshot *model.SlotTableSnapshot) error {
	if m.saveSlotTableErr != nil {
		return m.saveSlotTableErr
	}
	m.slotTables[sessionID] = snapshot
	return nil
}

func (m *mockSessionStore) GetSlotTable(_ context.Context, sessionID string) (*model.SlotTableSnapshot, error) {
	if m.getSlotTableErr != nil {
		return nil, m.getSlotTableErr
	}
	snapshot, ok := m.slotTables[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return snapshot, nil
}

func (m *mockSessionStore) SaveGeneration(_ context.Context, sessionID string, snapshot *model.GenerationSnapshot) error {
	if m.saveGenerationErr != nil {
		return m.saveGenerationErr
	}
	m.generations[sessionID] = snapshot
	return nil
}

func (m *mockSessionStore) GetGeneration(_ context.Context, sessionID string) (*model.GenerationSnapshot, error) {
	if m.getGenerationErr != nil {
		return nil, m.getGenerationErr
	}
	snapshot, ok := m.generations[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return snapshot, nil
}

func (m *mockSessionStore) Clear(_ context.Context, sessionID string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.slotTables, sessionID)
	delete(m.generations, sessionID)
	return nil
}

// ── 手写 Mock：槽位表记录 Repository ──

type mockSlotTableRepo struct {
	records   []model.SlotTableRecord
	createErr error
	listErr   error
}

func (m *mockSlotTableRepo) Create(_ context.Context, record *model.SlotTableRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockSlotTableRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]model.SlotTableRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.SlotTableRecord
	for _, r := range m.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ── 手写 Mock：生成记录 Repository ──

type mockGenerationRepo struct {
	records   []model.GenerationRecord
	createErr error
	listErr   error
}

func (m *mockGenerationRepo) Create(_ context.Context, record *model.GenerationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *mockGenerationRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]model.GenerationRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []model.GenerationRecord
	for _, r := range m.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// newTestRepository 组装 Mock Repository 聚合
func newTestRepository(st *mockSlotTableRepo, gen *mockGenerationRepo) *repository.Repository {
	return &repository.Repository{
		SlotTable:  st,
		Generation: gen,
	}
}
