package model

// SlotTableRecord 保存过的槽位表 — 对应 slot_tables
// 每次保存追加一条，会话内最新一条即当前生效的表
type SlotTableRecord struct {
	SlotTableID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_table_id"`
	SessionID   string     `gorm:"type:varchar(64);not null;index"                json:"session_id"`
	Days        StringList `gorm:"type:jsonb;not null"                            json:"days"`
	TimePeriods StringList `gorm:"type:jsonb;not null"                            json:"time_periods"`
	Grid        StringMap  `gorm:"type:jsonb;not null"                            json:"grid"` // "DAY_PERIOD" → 标签
	SlotCount   int        `gorm:"not null;default:0"                             json:"slot_count"`
	BaseModel
}

// TableName 指定表名
func (SlotTableRecord) TableName() string { return "slot_tables" }
