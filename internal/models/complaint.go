package models

import (
	"time"

	"gorm.io/gorm"
)

// Complaint 课程投诉表
type Complaint struct {
	ID        uint           `gorm:"primarykey" json:"id"`            // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`   // 用户ID
	CourseID  uint           `gorm:"index;not null" json:"course_id"` // 课程ID
	Subject   string         `gorm:"not null" json:"subject"`         // 投诉主题
	Content   string         `gorm:"type:text" json:"content"`        // 投诉内容
	Status    string         `gorm:"index;default:'open'" json:"status"` // 处理状态
	CreatedAt time.Time      `gorm:"index" json:"created_at"`         // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                      // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                  // 软删除时间
}

// TableName 指定表名
func (Complaint) TableName() string {
	return "complaints"
}
