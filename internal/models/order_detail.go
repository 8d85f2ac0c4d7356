package models

import "time"

// OrderDetail 订单明细表
type OrderDetail struct {
	ID        uint      `gorm:"primarykey" json:"id"`                             // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                   // 订单ID
	CourseID  uint      `gorm:"index;not null" json:"course_id"`                  // 课程ID
	Price     Money     `gorm:"type:decimal(10,2);not null" json:"price"`         // 成交单价
	CreatedAt time.Time `json:"created_at"`                                       // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                       // 更新时间

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"` // 课程
}

// TableName 指定表名
func (OrderDetail) TableName() string {
	return "order_details"
}
