package engine

import (
	"reflect"
	"testing"
)

// ════════════════════════════════════════════════════════════
// 倒排索引测试
// ════════════════════════════════════════════════════════════

func buildTestTable(t *testing.T) *SlotTable {
	t.Helper()
	table, err := BuildSlotTable(
		[]string{"MON", "TUE", "WED"},
		[]string{"P1", "P2", "P3"},
		map[CellRef]string{
			{Day: "MON", Period: "P1"}: "A",
			{Day: "TUE", Period: "P1"}: "A",
			{Day: "MON", Period: "P2"}: "B",
			{Day: "WED", Period: "P2"}: "L1", // 连排实验
			{Day: "WED", Period: "P3"}: "L1",
		},
	)
	if err != nil {
		t.Fatalf("构建槽位表失败: %v", err)
	}
	return table
}

func TestBuildIndex_ExactMirror(t *testing.T) {
	table := buildTestTable(t)
	ix := BuildIndex(table)

	// 索引必须与表的单元格映射完全一致
	for _, day := range table.Days() {
		for _, period := range table.Periods() {
			label, ok := table.Label(day, period)
			if !ok {
				continue
			}
			refs := ix.Lookup(label)
			found := false
			for _, r := range refs {
				if r.Day == day && r.Period == period {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("索引缺失: 标签 %s 应包含 (%s,%s)", label, day, period)
			}
		}
	}

	if got := len(ix.Lookup("A")); got != 2 {
		t.Errorf("标签 A 期望 2 个位置, 实际 %d", got)
	}
	if got := len(ix.Lookup("L1")); got != 2 {
		t.Errorf("标签 L1 期望 2 个位置, 实际 %d", got)
	}
}

func TestSlotIndex_LookupCaseInsensitive(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	if got := len(ix.Lookup("l1")); got != 2 {
		t.Errorf("小写查询 l1 期望 2 个位置, 实际 %d", got)
	}
	if got := len(ix.Lookup(" a ")); got != 2 {
		t.Errorf("带空白查询期望 2 个位置, 实际 %d", got)
	}
}

func TestSlotIndex_UnknownLabelReturnsEmpty(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	refs := ix.Lookup("ZZZ")
	if len(refs) != 0 {
		t.Errorf("未知标签期望空集, 实际 %d 个位置", len(refs))
	}
}

func TestSlotIndex_AvailableLabelsSorted(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	want := []string{"A", "B", "L1"}
	if got := ix.AvailableLabels(); !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableLabels 期望 %v, 实际 %v", want, got)
	}
}

// 同一张表重建索引必须逐位一致（确定性）
func TestBuildIndex_Deterministic(t *testing.T) {
	table := buildTestTable(t)

	first := BuildIndex(table)
	second := BuildIndex(table)

	for _, label := range first.AvailableLabels() {
		if !reflect.DeepEqual(first.Lookup(label), second.Lookup(label)) {
			t.Errorf("标签 %s 两次构建的位置序列不一致", label)
		}
	}
	if !reflect.DeepEqual(first.AvailableLabels(), second.AvailableLabels()) {
		t.Error("两次构建的标签集不一致")
	}
}
