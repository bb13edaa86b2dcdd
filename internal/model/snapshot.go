package model

import "encoding/json"

// ── 会话内快照（存于 Redis / 内存会话库，非数据库表） ──

// SlotTableSnapshot 会话当前生效的槽位表
// 引擎每次生成都从快照重建 SlotTable 与索引，核心自身不持有状态
type SlotTableSnapshot struct {
	Days        []string          `json:"days"`
	TimePeriods []string          `json:"time_periods"`
	Grid        map[string]string `json:"grid"` // "DAY_PERIOD" → 标签
}

// GenerationSnapshot 会话最近一次生成的结果
// Result 保存序列化后的响应原文，供查看与导出复用
type GenerationSnapshot struct {
	Courses []CourseInput   `json:"courses"`
	Result  json.RawMessage `json:"result"`
}

// CourseInput 课程输入：名称 + 槽位标签列表
type CourseInput struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}
