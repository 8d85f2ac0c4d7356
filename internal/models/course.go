package models

import (
	"time"

	"gorm.io/gorm"
)

// Course 课程表
type Course struct {
	ID            uint           `gorm:"primarykey" json:"id"`                             // 主键
	Title         string         `gorm:"not null" json:"title"`                            // 课程标题
	Description   string         `gorm:"type:text" json:"description"`                     // 课程简介
	Price         Money          `gorm:"type:decimal(10,2);not null" json:"price"`         // 原价
	DiscountPrice *Money         `gorm:"type:decimal(10,2)" json:"discount_price"`         // 优惠价（低于原价时生效）
	CategoryID    *uint          `gorm:"index" json:"category_id,omitempty"`               // 分类ID
	LevelID       *uint          `gorm:"index" json:"level_id,omitempty"`                  // 难度ID
	SellerID      uint           `gorm:"index;not null" json:"seller_id"`                  // 讲师（卖家）ID
	Status        string         `gorm:"index;not null;default:'draft'" json:"status"`     // 课程状态
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                          // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                   // 软删除时间

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类
	Level    *Level    `gorm:"foreignKey:LevelID" json:"level,omitempty"`       // 难度
	Lessons  []Lesson  `gorm:"foreignKey:CourseID" json:"lessons,omitempty"`    // 课时
}

// TableName 指定表名
func (Course) TableName() string {
	return "courses"
}

// EffectivePrice 生效价格：优惠价存在且严格低于原价时取优惠价，否则取原价
func (c Course) EffectivePrice() Money {
	if c.DiscountPrice != nil && c.DiscountPrice.Decimal.LessThan(c.Price.Decimal) {
		return *c.DiscountPrice
	}
	return c.Price
}
