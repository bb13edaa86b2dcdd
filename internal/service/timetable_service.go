package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"slotgrid/backend/internal/dto"
	"slotgrid/backend/internal/engine"
	"slotgrid/backend/internal/model"
	"slotgrid/backend/internal/repository"
)

// ── 时间表模块业务错误 ──

var (
	ErrNoSlotTable  = errors.New("尚未保存槽位表，请先定义槽位表")
	ErrNoGeneration = errors.New("尚未生成时间表")
)

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 引擎（internal/engine）完全无状态；会话当前的槽位表与最近
//     一次生成结果保存在 SessionStore，到期自动失效。
//   - 保存槽位表会覆盖会话旧表；每次生成都从快照重建表与索引，
//     不复用任何跨请求的可变状态。
//   - 每次保存/生成同时落一条数据库记录作为历史（审计用途），
//     会话数据与历史记录互不依赖。
// ─────────────────────────────────────────────────────────────

// TimetableService 时间表模块业务接口
type TimetableService interface {
	// SaveSlotTable 校验并保存会话槽位表
	SaveSlotTable(ctx context.Context, sessionID string, req *dto.SaveSlotTableRequest) (*dto.SaveSlotTableResponse, error)
	// GetAvailableSlots 列出当前槽位表的全部可选标签
	GetAvailableSlots(ctx context.Context, sessionID string) (*dto.AvailableSlotsResponse, error)
	// Generate 由课程列表生成时间表（含冲突检测）
	Generate(ctx context.Context, sessionID string, req *dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	// GetResult 读取会话最近一次生成结果
	GetResult(ctx context.Context, sessionID string) (*dto.GenerateTimetableResponse, error)
	// History 列出会话的历史生成记录
	History(ctx context.Context, sessionID string, limit int) (*dto.GenerationHistoryResponse, error)
	// ClearSession 清空会话数据
	ClearSession(ctx context.Context, sessionID string) error
}

type timetableService struct {
	repo     *repository.Repository
	sessions repository.SessionStore
	logger   *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, sessions repository.SessionStore, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, sessions: sessions, logger: logger}
}

// ════════════════════════════════════════════════════════════
// SaveSlotTable — 保存槽位表
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 解析 "DAY_PERIOD" 网格键并构建不可变 SlotTable（含全部校验）
//   2. 归一化后的快照写入会话存储（覆盖旧表）
//   3. 落一条保存记录到数据库
//   4. 返回统计与可选标签

func (s *timetableService) SaveSlotTable(ctx context.Context, sessionID string, req *dto.SaveSlotTableRequest) (*dto.SaveSlotTableResponse, error) {
	rawGrid, err := parseGridKeys(req.Grid)
	if err != nil {
		return nil, err
	}

	table, err := engine.BuildSlotTable(req.Days, req.TimePeriods, rawGrid)
	if err != nil {
		return nil, err
	}

	// 归一化快照：day/period 已去空白，标签已大写
	snapshot := snapshotFromTable(table)
	if err := s.sessions.SaveSlotTable(ctx, sessionID, snapshot); err != nil {
		s.logger.Error("保存槽位表到会话失败", zap.Error(err))
		return nil, fmt.Errorf("保存槽位表失败: %w", err)
	}

	record := &model.SlotTableRecord{
		SessionID:   sessionID,
		Days:        model.StringList(snapshot.Days),
		TimePeriods: model.StringList(snapshot.TimePeriods),
		Grid:        model.StringMap(snapshot.Grid),
		SlotCount:   table.CellCount(),
	}
	if err := s.repo.SlotTable.Create(ctx, record); err != nil {
		s.logger.Error("写入槽位表记录失败", zap.Error(err))
		return nil, err
	}

	ix := engine.BuildIndex(table)
	labels := ix.AvailableLabels()

	return &dto.SaveSlotTableResponse{
		Stats: dto.SlotTableStats{
			Days:        len(snapshot.Days),
			TimePeriods: len(snapshot.TimePeriods),
			TotalSlots:  len(labels),
		},
		Slots: labels,
	}, nil
}

// ════════════════════════════════════════════════════════════
// GetAvailableSlots — 列出可选槽位标签
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetAvailableSlots(ctx context.Context, sessionID string) (*dto.AvailableSlotsResponse, error) {
	table, err := s.loadTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ix := engine.BuildIndex(table)
	return &dto.AvailableSlotsResponse{Slots: ix.AvailableLabels()}, nil
}

// ════════════════════════════════════════════════════════════
// Generate — 生成时间表
// ════════════════════════════════════════════════════════════
//
// 流程：
//   1. 从会话快照重建槽位表（核心保持无状态）
//   2. 引擎生成：索引 → 映射 → 编译
//   3. 结果写回会话（供查看/导出复用）并落历史记录

func (s *timetableService) Generate(ctx context.Context, sessionID string, req *dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	table, err := s.loadTable(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	courses := make([]engine.Course, 0, len(req.Courses))
	for _, c := range req.Courses {
		courses = append(courses, engine.Course{Name: c.Name, Slots: c.Slots})
	}

	result, err := engine.Generate(table, courses)
	if err != nil {
		return nil, err
	}

	resp := toGenerateResponse(table, result)

	// 写回会话：结果原文 + 课程输入，供查看与导出
	raw, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error("序列化生成结果失败", zap.Error(err))
		return nil, fmt.Errorf("序列化生成结果失败: %w", err)
	}
	courseInputs := make([]model.CourseInput, 0, len(req.Courses))
	for _, c := range req.Courses {
		courseInputs = append(courseInputs, model.CourseInput{Name: c.Name, Slots: c.Slots})
	}
	if err := s.sessions.SaveGeneration(ctx, sessionID, &model.GenerationSnapshot{
		Courses: courseInputs,
		Result:  raw,
	}); err != nil {
		s.logger.Error("保存生成结果到会话失败", zap.Error(err))
		return nil, err
	}

	// 历史记录
	summaryRaw, _ := json.Marshal(resp.Summary)
	record := &model.GenerationRecord{
		SessionID:     sessionID,
		CourseCount:   resp.Summary.TotalCourses,
		ConflictCount: len(resp.Conflicts),
		WarningCount:  len(resp.Warnings),
		HasConflicts:  resp.HasConflicts,
		Summary:       model.JSONText(summaryRaw),
	}
	if err := s.repo.Generation.Create(ctx, record); err != nil {
		s.logger.Error("写入生成记录失败", zap.Error(err))
		return nil, err
	}

	return resp, nil
}

// ════════════════════════════════════════════════════════════
// GetResult — 读取最近一次生成结果
// ════════════════════════════════════════════════════════════

func (s *timetableService) GetResult(ctx context.Context, sessionID string) (*dto.GenerateTimetableResponse, error) {
	snapshot, err := s.sessions.GetGeneration(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNoGeneration
		}
		s.logger.Error("读取生成结果失败", zap.Error(err))
		return nil, err
	}

	var resp dto.GenerateTimetableResponse
	if err := json.Unmarshal(snapshot.Result, &resp); err != nil {
		s.logger.Error("反序列化生成结果失败", zap.Error(err))
		return nil, fmt.Errorf("反序列化生成结果失败: %w", err)
	}
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// History — 历史生成记录
// ════════════════════════════════════════════════════════════

const defaultHistoryLimit = 20

func (s *timetableService) History(ctx context.Context, sessionID string, limit int) (*dto.GenerationHistoryResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}

	records, err := s.repo.Generation.ListBySession(ctx, sessionID, limit)
	if err != nil {
		s.logger.Error("查询生成记录失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.GenerationHistoryItem, 0, len(records))
	for _, r := range records {
		items = append(items, dto.GenerationHistoryItem{
			GenerationID:  r.GenerationID,
			CourseCount:   r.CourseCount,
			ConflictCount: r.ConflictCount,
			WarningCount:  r.WarningCount,
			HasConflicts:  r.HasConflicts,
			CreatedAt:     r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return &dto.GenerationHistoryResponse{Items: items}, nil
}

// ════════════════════════════════════════════════════════════
// ClearSession — 清空会话数据
// ════════════════════════════════════════════════════════════

func (s *timetableService) ClearSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		s.logger.Error("清空会话失败", zap.Error(err))
		return err
	}
	return nil
}

// ── 私有辅助方法 ──

// loadTable 从会话快照重建槽位表
func (s *timetableService) loadTable(ctx context.Context, sessionID string) (*engine.SlotTable, error) {
	snapshot, err := s.sessions.GetSlotTable(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrNoSlotTable
		}
		s.logger.Error("读取会话槽位表失败", zap.Error(err))
		return nil, err
	}

	rawGrid, err := parseGridKeys(snapshot.Grid)
	if err != nil {
		// 快照写入时已归一化，键格式异常说明存储数据损坏
		s.logger.Error("会话槽位表数据损坏", zap.Error(err))
		return nil, fmt.Errorf("会话槽位表数据损坏: %w", err)
	}
	return engine.BuildSlotTable(snapshot.Days, snapshot.TimePeriods, rawGrid)
}

// parseGridKeys 将 "DAY_PERIOD" 键拆为单元格坐标（按第一个下划线）
func parseGridKeys(grid map[string]string) (map[engine.CellRef]string, error) {
	result := make(map[engine.CellRef]string, len(grid))
	for key, label := range grid {
		parts := strings.SplitN(key, "_", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, engine.NewValidationError(engine.CodeMalformedGridKey, key,
				fmt.Sprintf("网格键 %q 格式应为 DAY_PERIOD", key))
		}
		result[engine.CellRef{Day: parts[0], Period: parts[1]}] = label
	}
	return result, nil
}

// snapshotFromTable 从不可变表生成归一化会话快照
func snapshotFromTable(table *engine.SlotTable) *model.SlotTableSnapshot {
	grid := make(map[string]string, table.CellCount())
	for _, day := range table.Days() {
		for _, period := range table.Periods() {
			if label, ok := table.Label(day, period); ok {
				grid[day+"_"+period] = label
			}
		}
	}
	return &model.SlotTableSnapshot{
		Days:        table.Days(),
		TimePeriods: table.Periods(),
		Grid:        grid,
	}
}

// ── 响应转换器 ──

func toGenerateResponse(table *engine.SlotTable, result *engine.Result) *dto.GenerateTimetableResponse {
	grid := make([][]dto.TimetableCell, 0, len(result.Grid))
	for _, row := range result.Grid {
		cells := make([]dto.TimetableCell, 0, len(row))
		for _, cell := range row {
			cells = append(cells, dto.TimetableCell{
				Courses:     append([]string{}, cell.Courses...),
				HasConflict: cell.HasConflict,
				IsEmpty:     cell.IsEmpty,
				Display:     formatCell(cell.Courses),
			})
		}
		grid = append(grid, cells)
	}

	conflicts := make([]dto.ConflictItem, 0, len(result.Conflicts))
	for _, c := range result.Conflicts {
		conflicts = append(conflicts, dto.ConflictItem{
			Day:      c.Day,
			Time:     c.Period,
			Courses:  append([]string{}, c.Courses...),
			Count:    len(c.Courses),
			Severity: c.Severity,
		})
	}

	warnings := make([]dto.UnknownSlotItem, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, dto.UnknownSlotItem{Course: w.Course, Label: w.Label})
	}

	return &dto.GenerateTimetableResponse{
		Grid:      grid,
		Conflicts: conflicts,
		Summary: dto.TimetableSummary{
			TotalCourses: result.Summary.TotalCourses,
			TotalPeriods: result.Summary.TotalPeriods,
			Days:         result.Summary.Days,
			Conflicts: dto.ConflictStats{
				TotalConflicts:   result.Summary.Conflicts.TotalConflicts,
				HighSeverity:     result.Summary.Conflicts.HighSeverity,
				CriticalSeverity: result.Summary.Conflicts.CriticalSeverity,
				AffectedCourses:  append([]string{}, result.Summary.Conflicts.AffectedCourses...),
			},
		},
		HasConflicts: result.HasConflicts,
		Warnings:     warnings,
		Days:         table.Days(),
		TimePeriods:  table.Periods(),
	}
}

// formatCell 单元格展示文本："-" / 课程名 / "A / B"
func formatCell(courses []string) string {
	switch len(courses) {
	case 0:
		return "-"
	case 1:
		return courses[0]
	default:
		return strings.Join(courses, " / ")
	}
}
