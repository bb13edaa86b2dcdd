package engine

// Result 一次完整生成的输出
type Result struct {
	Grid         Grid
	Conflicts    []ConflictRecord
	Warnings     []UnknownSlotWarning
	Summary      Summary
	HasConflicts bool
}

// Generate 一次完整的时间表生成：索引 → 映射 → 编译
//
// 每次调用都从槽位表重建索引，保证表被替换后索引不致陈旧。
// 整条链路无共享可变状态，可被多个请求并发调用。
func Generate(table *SlotTable, courses []Course) (*Result, error) {
	ix := BuildIndex(table)

	entries, warnings, err := MapCourses(courses, ix)
	if err != nil {
		return nil, err
	}

	grid, conflicts, summary := Compile(table, entries)

	return &Result{
		Grid:         grid,
		Conflicts:    conflicts,
		Warnings:     warnings,
		Summary:      summary,
		HasConflicts: len(conflicts) > 0,
	}, nil
}
