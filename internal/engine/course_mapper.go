package engine

import (
	"fmt"
	"strings"
)

// Course 一门课程：名称 + 其申请的槽位标签列表
type Course struct {
	Name  string
	Slots []string
}

// OccupancyEntry 占用事实："某课程占据某单元格"
type OccupancyEntry struct {
	Day    string
	Period string
	Course string
}

// UnknownSlotWarning 课程引用了槽位表中不存在的标签（非致命，仅告知）
type UnknownSlotWarning struct {
	Course string
	Label  string
}

// MapCourses 将课程的槽位标签展开为具体的单元格占用
//
// 校验（任一失败则整个请求失败，不产出部分结果）：
//   - 课程列表非空
//   - 每门课程名称非空白
//   - 每门课程至少申请一个槽位标签
//
// 展开规则：
//   - 每门课程内的标签大小写不敏感去重
//   - 标签未命中索引 → 记 UnknownSlotWarning 并跳过，不中断请求
//   - 同一课程经不同标签落入同一单元格只计一次（自身不构成冲突）
func MapCourses(courses []Course, ix *SlotIndex) ([]OccupancyEntry, []UnknownSlotWarning, error) {
	if len(courses) == 0 {
		return nil, nil, NewValidationError(CodeEmptyCourses, "courses", "课程列表不能为空")
	}

	entries := make([]OccupancyEntry, 0, len(courses)*2)
	warnings := make([]UnknownSlotWarning, 0)

	for i, course := range courses {
		name := strings.TrimSpace(course.Name)
		if name == "" {
			return nil, nil, NewValidationError(CodeBlankCourseName,
				fmt.Sprintf("courses[%d].name", i), "课程名称不能为空")
		}
		if len(course.Slots) == 0 {
			return nil, nil, NewValidationError(CodeCourseNoSlots,
				fmt.Sprintf("courses[%d].slots", i),
				fmt.Sprintf("课程 %q 未指定任何槽位标签", name))
		}

		seenLabels := make(map[string]bool, len(course.Slots))
		seenCells := make(map[CellRef]bool)

		for _, raw := range course.Slots {
			label := strings.ToUpper(strings.TrimSpace(raw))
			if label == "" || seenLabels[label] {
				continue
			}
			seenLabels[label] = true

			refs := ix.Lookup(label)
			if len(refs) == 0 {
				warnings = append(warnings, UnknownSlotWarning{Course: name, Label: label})
				continue
			}

			for _, ref := range refs {
				if seenCells[ref] {
					continue
				}
				seenCells[ref] = true
				entries = append(entries, OccupancyEntry{
					Day:    ref.Day,
					Period: ref.Period,
					Course: name,
				})
			}
		}
	}

	return entries, warnings, nil
}
