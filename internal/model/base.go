package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── PostgreSQL JSONB 自定义类型 ──

// StringList 对应 JSONB 字符串数组，实现 GORM Scanner/Valuer 接口。
type StringList []string

// Scan 将 JSONB 文本解析为 []string。
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, l)
}

// Value 将 []string 序列化为 JSONB 文本。
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// StringMap 对应 JSONB 字符串映射，实现 GORM Scanner/Valuer 接口。
type StringMap map[string]string

// Scan 将 JSONB 文本解析为 map[string]string。
func (m *StringMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringMap.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(data, m)
}

// Value 将 map[string]string 序列化为 JSONB 文本。
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// JSONText 原样存取的 JSONB 字段。
type JSONText json.RawMessage

// Scan 读取 JSONB 原文。
func (j *JSONText) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONText(v)
	default:
		return fmt.Errorf("JSONText.Scan: unsupported type %T", src)
	}
	return nil
}

// Value 写回 JSONB 原文。
func (j JSONText) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

// MarshalJSON 原样输出
func (j JSONText) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON 原样保存
func (j *JSONText) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// BaseModel 通用审计字段
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// [自证通过] internal/model/base.go
