package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 课程分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"` // 分类名称
	SortOrder int            `gorm:"default:0" json:"sort_order"`      // 排序权重
	CreatedAt time.Time      `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
