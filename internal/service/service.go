package service

import (
	"go.uber.org/zap"

	"slotgrid/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Timetable TimetableService
	Export    ExportService
}

// NewService 创建 Service 聚合
func NewService(repo *repository.Repository, sessions repository.SessionStore, logger *zap.Logger) *Service {
	return &Service{
		Timetable: NewTimetableService(repo, sessions, logger),
		Export:    NewExportService(sessions, logger),
	}
}

