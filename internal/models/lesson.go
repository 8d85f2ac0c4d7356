package models

import (
	"time"

	"gorm.io/gorm"
)

// Lesson 课时表
type Lesson struct {
	ID        uint           `gorm:"primarykey" json:"id"`        // 主键
	CourseID  uint           `gorm:"index;not null" json:"course_id"` // 课程ID
	Title     string         `gorm:"not null" json:"title"`       // 课时标题
	Content   string         `gorm:"type:text" json:"content"`    // 课时内容（仅限已报名用户）
	VideoURL  string         `json:"video_url"`                   // 视频地址
	SortOrder int            `gorm:"default:0" json:"sort_order"` // 排序权重
	CreatedAt time.Time      `json:"created_at"`                  // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                  // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`              // 软删除时间
}

// TableName 指定表名
func (Lesson) TableName() string {
	return "lessons"
}
