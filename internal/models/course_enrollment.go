package models

import "time"

// CourseEnrollment 课程报名表
// (user_id, course_id) 上的复合唯一索引是防止重复报名的最终仲裁：
// 并发对账事务提交时由数据库层保证互斥。
type CourseEnrollment struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                          // 主键
	UserID         uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_course" json:"user_id"`   // 用户ID
	CourseID       uint      `gorm:"not null;uniqueIndex:idx_enrollments_user_course" json:"course_id"` // 课程ID
	OrderID        uint      `gorm:"index;not null" json:"order_id"`                                // 订单ID
	EnrollmentDate time.Time `gorm:"index" json:"enrollment_date"`                                  // 报名时间
	CreatedAt      time.Time `json:"created_at"`                                                    // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                                                    // 更新时间

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"` // 课程
	Order  *Order  `gorm:"foreignKey:OrderID" json:"order,omitempty"`   // 订单
}

// TableName 指定表名
func (CourseEnrollment) TableName() string {
	return "course_enrollments"
}
