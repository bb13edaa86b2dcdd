package engine

import (
	"reflect"
	"testing"
)

// ════════════════════════════════════════════════════════════
// 网格编译与冲突检测测试
// ════════════════════════════════════════════════════════════

// 场景 A：同标签跨格不构成冲突
func TestGenerate_ScenarioNoConflict(t *testing.T) {
	table, err := BuildSlotTable(
		[]string{"MON", "TUE"},
		[]string{"P1", "P2"},
		map[CellRef]string{
			{Day: "MON", Period: "P1"}: "A",
			{Day: "MON", Period: "P2"}: "B",
			{Day: "TUE", Period: "P1"}: "A",
		},
	)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	result, err := Generate(table, []Course{
		{Name: "X", Slots: []string{"A"}},
		{Name: "Y", Slots: []string{"B"}},
	})
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	if result.HasConflicts {
		t.Error("期望无冲突")
	}
	if len(result.Conflicts) != 0 {
		t.Errorf("冲突数期望 0, 实际 %d", len(result.Conflicts))
	}

	// MON/P1 仅有 X
	monP1 := result.Grid[0][0]
	if !reflect.DeepEqual(monP1.Courses, []string{"X"}) {
		t.Errorf("MON/P1 课程期望 [X], 实际 %v", monP1.Courses)
	}
	if monP1.HasConflict || monP1.IsEmpty {
		t.Errorf("MON/P1 标志异常: %+v", monP1)
	}

	// X 同时占据 TUE/P1
	tueP1 := result.Grid[1][0]
	if !reflect.DeepEqual(tueP1.Courses, []string{"X"}) {
		t.Errorf("TUE/P1 课程期望 [X], 实际 %v", tueP1.Courses)
	}

	// TUE/P2 无人占用
	if !result.Grid[1][1].IsEmpty {
		t.Error("TUE/P2 应为空")
	}

	if result.Summary.TotalCourses != 2 {
		t.Errorf("TotalCourses 期望 2, 实际 %d", result.Summary.TotalCourses)
	}
	if result.Summary.TotalPeriods != 2 || result.Summary.Days != 2 {
		t.Errorf("Summary 维度异常: %+v", result.Summary)
	}
}

// 场景 B：两门课同格 → high 冲突
func TestGenerate_ScenarioConflict(t *testing.T) {
	table, err := BuildSlotTable(
		[]string{"MON"},
		[]string{"P1"},
		map[CellRef]string{
			{Day: "MON", Period: "P1"}: "A",
		},
	)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	result, err := Generate(table, []Course{
		{Name: "X", Slots: []string{"A"}},
		{Name: "Y", Slots: []string{"A"}},
	})
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}

	if !result.HasConflicts {
		t.Fatal("期望存在冲突")
	}
	if len(result.Conflicts) != 1 {
		t.Fatalf("冲突数期望 1, 实际 %d", len(result.Conflicts))
	}

	c := result.Conflicts[0]
	if c.Day != "MON" || c.Period != "P1" {
		t.Errorf("冲突位置期望 MON/P1, 实际 %s/%s", c.Day, c.Period)
	}
	if c.Severity != SeverityHigh {
		t.Errorf("严重度期望 high, 实际 %s", c.Severity)
	}
	// 课程列表保留首见顺序，不按字母序
	if !reflect.DeepEqual(c.Courses, []string{"X", "Y"}) {
		t.Errorf("冲突课程期望 [X Y], 实际 %v", c.Courses)
	}

	cell := result.Grid[0][0]
	if !cell.HasConflict || !reflect.DeepEqual(cell.Courses, []string{"X", "Y"}) {
		t.Errorf("单元格异常: %+v", cell)
	}

	if result.Summary.Conflicts.TotalConflicts != 1 ||
		result.Summary.Conflicts.HighSeverity != 1 ||
		result.Summary.Conflicts.CriticalSeverity != 0 {
		t.Errorf("冲突统计异常: %+v", result.Summary.Conflicts)
	}
}

// 场景 C：未知标签 → 警告 + 空网格
func TestGenerate_ScenarioUnknownSlot(t *testing.T) {
	table, err := BuildSlotTable(
		[]string{"MON"},
		[]string{"P1"},
		map[CellRef]string{
			{Day: "MON", Period: "P1"}: "A",
		},
	)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	result, err := Generate(table, []Course{
		{Name: "X", Slots: []string{"Z"}},
	})
	if err != nil {
		t.Fatalf("未知标签不应致命: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("警告数期望 1, 实际 %d", len(result.Warnings))
	}
	if result.Warnings[0].Course != "X" || result.Warnings[0].Label != "Z" {
		t.Errorf("警告内容异常: %+v", result.Warnings[0])
	}
	if !result.Grid[0][0].IsEmpty {
		t.Error("网格应全空")
	}
	if result.Summary.TotalCourses != 0 {
		t.Errorf("TotalCourses 期望 0, 实际 %d", result.Summary.TotalCourses)
	}
}

// 3 门及以上同格 → critical
func TestCompile_CriticalSeverity(t *testing.T) {
	table, err := BuildSlotTable(
		[]string{"MON"},
		[]string{"P1"},
		map[CellRef]string{
			{Day: "MON", Period: "P1"}: "A",
		},
	)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	entries := []OccupancyEntry{
		{Day: "MON", Period: "P1", Course: "X"},
		{Day: "MON", Period: "P1", Course: "Y"},
		{Day: "MON", Period: "P1", Course: "Z"},
	}

	_, conflicts, summary := Compile(table, entries)
	if len(conflicts) != 1 {
		t.Fatalf("冲突数期望 1, 实际 %d", len(conflicts))
	}
	if conflicts[0].Severity != SeverityCritical {
		t.Errorf("严重度期望 critical, 实际 %s", conflicts[0].Severity)
	}
	if summary.Conflicts.CriticalSeverity != 1 {
		t.Errorf("critical 计数期望 1, 实际 %d", summary.Conflicts.CriticalSeverity)
	}
	want := []string{"X", "Y", "Z"}
	if !reflect.DeepEqual(summary.Conflicts.AffectedCourses, want) {
		t.Errorf("受影响课程期望 %v, 实际 %v", want, summary.Conflicts.AffectedCourses)
	}
}

// 同一课程在同格的重复条目折叠为一，不构成冲突
func TestCompile_DuplicateEntriesCollapse(t *testing.T) {
	table, err := BuildSlotTable(
		[]string{"MON"},
		[]string{"P1"},
		map[CellRef]string{
			{Day: "MON", Period: "P1"}: "A",
		},
	)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	entries := []OccupancyEntry{
		{Day: "MON", Period: "P1", Course: "X"},
		{Day: "MON", Period: "P1", Course: "X"},
	}

	grid, conflicts, _ := Compile(table, entries)
	if len(conflicts) != 0 {
		t.Errorf("同课程重复条目不应构成冲突, 实际 %d 条", len(conflicts))
	}
	if len(grid[0][0].Courses) != 1 {
		t.Errorf("课程列表长度期望 1, 实际 %d", len(grid[0][0].Courses))
	}
}

// 幂等：相同输入两次编译结果逐位一致
func TestCompile_Idempotent(t *testing.T) {
	table := buildTestTable(t)
	ix := BuildIndex(table)

	entries, _, err := MapCourses([]Course{
		{Name: "数据结构", Slots: []string{"A", "L1"}},
		{Name: "操作系统", Slots: []string{"A", "B"}},
		{Name: "编译原理", Slots: []string{"L1"}},
	}, ix)
	if err != nil {
		t.Fatalf("映射失败: %v", err)
	}

	grid1, conflicts1, summary1 := Compile(table, entries)
	grid2, conflicts2, summary2 := Compile(table, entries)

	if !reflect.DeepEqual(grid1, grid2) {
		t.Error("两次编译的网格不一致")
	}
	if !reflect.DeepEqual(conflicts1, conflicts2) {
		t.Error("两次编译的冲突记录不一致")
	}
	if !reflect.DeepEqual(summary1, summary2) {
		t.Error("两次编译的统计不一致")
	}
}

// 守恒：TotalCourses 等于网格中出现的不同课程数
func TestCompile_CourseConservation(t *testing.T) {
	table := buildTestTable(t)
	ix := BuildIndex(table)

	entries, _, err := MapCourses([]Course{
		{Name: "数据结构", Slots: []string{"A"}},
		{Name: "操作系统", Slots: []string{"B", "L1"}},
	}, ix)
	if err != nil {
		t.Fatalf("映射失败: %v", err)
	}

	grid, _, summary := Compile(table, entries)

	seen := make(map[string]bool)
	for _, row := range grid {
		for _, cell := range row {
			for _, c := range cell.Courses {
				seen[c] = true
			}
		}
	}
	if summary.TotalCourses != len(seen) {
		t.Errorf("TotalCourses=%d 与网格中不同课程数 %d 不符", summary.TotalCourses, len(seen))
	}
}

// 冲突记录按网格遍历顺序（day 外层、period 内层）输出
func TestCompile_ConflictTraversalOrder(t *testing.T) {
	table, err := BuildSlotTable(
		[]string{"MON", "TUE"},
		[]string{"P1", "P2"},
		map[CellRef]string{
			{Day: "MON", Period: "P2"}: "B",
			{Day: "TUE", Period: "P1"}: "C",
			{Day: "MON", Period: "P1"}: "A",
		},
	)
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}

	entries := []OccupancyEntry{
		{Day: "TUE", Period: "P1", Course: "X"},
		{Day: "TUE", Period: "P1", Course: "Y"},
		{Day: "MON", Period: "P2", Course: "X"},
		{Day: "MON", Period: "P2", Course: "Y"},
		{Day: "MON", Period: "P1", Course: "X"},
		{Day: "MON", Period: "P1", Course: "Y"},
	}

	_, conflicts, _ := Compile(table, entries)
	if len(conflicts) != 3 {
		t.Fatalf("冲突数期望 3, 实际 %d", len(conflicts))
	}

	wantOrder := []CellRef{
		{Day: "MON", Period: "P1"},
		{Day: "MON", Period: "P2"},
		{Day: "TUE", Period: "P1"},
	}
	for i, want := range wantOrder {
		if conflicts[i].Day != want.Day || conflicts[i].Period != want.Period {
			t.Errorf("第 %d 条冲突期望 %s/%s, 实际 %s/%s",
				i, want.Day, want.Period, conflicts[i].Day, conflicts[i].Period)
		}
	}
}
