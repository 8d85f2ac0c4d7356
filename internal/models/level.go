package models

import "time"

// Level 课程难度表
type Level struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	Name      string    `gorm:"uniqueIndex;not null" json:"name"` // 难度名称
	SortOrder int       `gorm:"default:0" json:"sort_order"`      // 排序权重
	CreatedAt time.Time `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (Level) TableName() string {
	return "levels"
}
