package engine

import "testing"

// ════════════════════════════════════════════════════════════
// 课程映射测试
// ════════════════════════════════════════════════════════════

func TestMapCourses_Basic(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	entries, warnings, err := MapCourses([]Course{
		{Name: "数据结构", Slots: []string{"A"}},
		{Name: "操作系统", Slots: []string{"B"}},
	}, ix)
	if err != nil {
		t.Fatalf("映射失败: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("期望无警告, 实际 %d 条", len(warnings))
	}

	// A 占 2 格 + B 占 1 格 = 3 条占用
	if len(entries) != 3 {
		t.Fatalf("占用条目期望 3, 实际 %d", len(entries))
	}

	// 条目顺序跟随课程输入顺序
	if entries[0].Course != "数据结构" || entries[2].Course != "操作系统" {
		t.Errorf("条目顺序应跟随课程输入顺序, 实际 %+v", entries)
	}
}

func TestMapCourses_EmptyList(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	_, _, err := MapCourses(nil, ix)
	assertValidationCode(t, err, CodeEmptyCourses)
}

func TestMapCourses_BlankName(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	_, _, err := MapCourses([]Course{{Name: "  ", Slots: []string{"A"}}}, ix)
	ve := assertValidationCode(t, err, CodeBlankCourseName)
	if ve.Field != "courses[0].name" {
		t.Errorf("Field 期望 courses[0].name, 实际 %q", ve.Field)
	}
}

func TestMapCourses_NoSlots(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	_, _, err := MapCourses([]Course{
		{Name: "数据结构", Slots: []string{"A"}},
		{Name: "操作系统", Slots: nil},
	}, ix)
	ve := assertValidationCode(t, err, CodeCourseNoSlots)
	if ve.Field != "courses[1].slots" {
		t.Errorf("Field 期望 courses[1].slots, 实际 %q", ve.Field)
	}
}

// 场景 C：未知标签记警告但不中断
func TestMapCourses_UnknownLabelWarns(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	entries, warnings, err := MapCourses([]Course{
		{Name: "X", Slots: []string{"Z"}},
	}, ix)
	if err != nil {
		t.Fatalf("未知标签不应致命: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("期望 0 条占用, 实际 %d", len(entries))
	}
	if len(warnings) != 1 {
		t.Fatalf("期望 1 条警告, 实际 %d", len(warnings))
	}
	if warnings[0].Course != "X" || warnings[0].Label != "Z" {
		t.Errorf("警告内容期望 {X Z}, 实际 %+v", warnings[0])
	}
}

// 同一课程内重复标签应去重（大小写不敏感）
func TestMapCourses_DuplicateLabelsDeduped(t *testing.T) {
	ix := BuildIndex(buildTestTable(t))

	entries, _, err := MapCourses([]Course{
		{Name: "数据结构", Slots: []string{"A", "a", " A "}},
	}, ix)
	if err != nil {
		t.Fatalf("映射失败: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("去重后期望 2 条占用, 实际 %d", len(entries))
	}
}

// 同一课程落入同一单元格只计一次（不与自己冲突）
func TestMapCourses_NoSelfConflict(t *testing.T) {
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

	ix := BuildIndex(table)
	entries, _, err := MapCourses([]Course{
		{Name: "X", Slots: []string{"A", "a "}},
	}, ix)
	if err != nil {
		t.Fatalf("映射失败: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("同格去重后期望 1 条占用, 实际 %d", len(entries))
	}
}
