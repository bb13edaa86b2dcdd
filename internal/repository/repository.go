package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	SlotTable  SlotTableRepository
	Generation GenerationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		SlotTable:  NewSlotTableRepo(db),
		Generation: NewGenerationRepo(db),
	}
}

