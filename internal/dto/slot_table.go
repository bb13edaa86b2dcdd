package dto

// ── 槽位表模块 DTO ──

// SaveSlotTableRequest 保存槽位表请求
// grid 键格式 "DAY_PERIOD"（按第一个下划线拆分），值为槽位标签；
// 空白值表示该单元格无槽位（如午休）
type SaveSlotTableRequest struct {
	Days        []string          `json:"days"         binding:"required,min=1"`
	TimePeriods []string          `json:"time_periods" binding:"required,min=1"`
	Grid        map[string]string `json:"grid"         binding:"required"`
}

// SlotTableStats 槽位表统计
type SlotTableStats struct {
	Days        int `json:"days"`
	TimePeriods int `json:"time_periods"`
	TotalSlots  int `json:"total_slots"`
}

// SaveSlotTableResponse 保存槽位表响应
type SaveSlotTableResponse struct {
	Stats SlotTableStats `json:"stats"`
	Slots []string       `json:"slots"` // 可选槽位标签，升序
}

// AvailableSlotsResponse 可选槽位标签响应
type AvailableSlotsResponse struct {
	Slots []string `json:"slots"`
}
