package dto

// ── 时间表生成模块 DTO ──

// CourseRequest 一门课程的输入
type CourseRequest struct {
	Name  string   `json:"name"  binding:"required"`
	Slots []string `json:"slots" binding:"required,min=1"`
}

// GenerateTimetableRequest 生成时间表请求
type GenerateTimetableRequest struct {
	Courses []CourseRequest `json:"courses" binding:"required,min=1,dive"`
}

// TimetableCell 网格单元格
// 字段名与既有前端约定保持一致：courses / is_empty / has_conflict
type TimetableCell struct {
	Courses     []string `json:"courses"`
	HasConflict bool     `json:"has_conflict"`
	IsEmpty     bool     `json:"is_empty"`
	Display     string   `json:"display"` // "-" / 课程名 / "A / B"
}

// ConflictItem 一个冲突单元格
type ConflictItem struct {
	Day      string   `json:"day"`
	Time     string   `json:"time"`
	Courses  []string `json:"courses"`
	Count    int      `json:"count"`
	Severity string   `json:"severity"` // high / critical
}

// ConflictStats 冲突统计
type ConflictStats struct {
	TotalConflicts   int      `json:"total_conflicts"`
	HighSeverity     int      `json:"high_severity"`
	CriticalSeverity int      `json:"critical_severity"`
	AffectedCourses  []string `json:"affected_courses"`
}

// TimetableSummary 生成结果统计
type TimetableSummary struct {
	TotalCourses int           `json:"total_courses"`
	TotalPeriods int           `json:"total_periods"`
	Days         int           `json:"days"`
	Conflicts    ConflictStats `json:"conflicts"`
}

// UnknownSlotItem 未知槽位警告：课程引用了表中不存在的标签
type UnknownSlotItem struct {
	Course string `json:"course"`
	Label  string `json:"label"`
}

// GenerateTimetableResponse 生成时间表响应
// grid[dayIdx][periodIdx]，行列顺序与 days / time_periods 一致
type GenerateTimetableResponse struct {
	Grid         [][]TimetableCell `json:"grid"`
	Conflicts    []ConflictItem    `json:"conflicts"`
	Summary      TimetableSummary  `json:"summary"`
	HasConflicts bool              `json:"has_conflicts"`
	Warnings     []UnknownSlotItem `json:"warnings"`
	Days         []string          `json:"days"`
	TimePeriods  []string          `json:"time_periods"`
}

// GenerationHistoryItem 历史生成记录
type GenerationHistoryItem struct {
	GenerationID  string `json:"generation_id"`
	CourseCount   int    `json:"course_count"`
	ConflictCount int    `json:"conflict_count"`
	WarningCount  int    `json:"warning_count"`
	HasConflicts  bool   `json:"has_conflicts"`
	CreatedAt     string `json:"created_at"`
}

// GenerationHistoryResponse 历史生成记录列表
type GenerationHistoryResponse struct {
	Items []GenerationHistoryItem `json:"items"`
}
