package repository

import (
	"context"

	"gorm.io/gorm"

	"slotgrid/backend/internal/model"
)

// SlotTableRepository 槽位表保存记录数据访问接口
type SlotTableRepository interface {
	Create(ctx context.Context, record *model.SlotTableRecord) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]model.SlotTableRecord, error)
}

type slotTableRepo struct {
	db *gorm.DB
}

// NewSlotTableRepo 创建 SlotTableRepository 实例
func NewSlotTableRepo(db *gorm.DB) SlotTableRepository {
	return &slotTableRepo{db: db}
}

func (r *slotTableRepo) Create(ctx context.Context, record *model.SlotTableRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *slotTableRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]model.SlotTableRecord, error) {
	var records []model.SlotTableRecord
	db := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&records).Error
	return records, err
}
