package engine

import "fmt"

// ── 校验错误码 ──
//
// Code 供调用方程序化分支使用；Message 面向用户提示。

const (
	CodeEmptyDays        = "empty_days"
	CodeEmptyPeriods     = "empty_periods"
	CodeBlankDay         = "blank_day"
	CodeBlankPeriod      = "blank_period"
	CodeDuplicateDay     = "duplicate_day"
	CodeDuplicatePeriod  = "duplicate_period"
	CodeUnknownGridDay   = "unknown_grid_day"
	CodeUnknownGridSlot  = "unknown_grid_period"
	CodeMalformedGridKey = "malformed_grid_key"
	CodeEmptyCourses     = "empty_courses"
	CodeBlankCourseName  = "blank_course_name"
	CodeCourseNoSlots    = "course_no_slots"
)

// ValidationError 输入校验失败（对当前请求致命，由调用方提示用户后重试）
type ValidationError struct {
	Code    string // 机器可读的原因码
	Field   string // 出错的字段或键（可为空）
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Field)
	}
	return e.Message
}

// NewValidationError 构造校验错误；也供摄入层（如网格键解析）使用
func NewValidationError(code, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}
