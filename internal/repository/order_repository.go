package repository

import (
	"errors"

	"github.com/coursehub-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, details []models.OrderDetail) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndUser(id uint, userID uint) (*models.Order, error)
	GetByUserAndCourse(userID, courseID uint) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单与订单明细
func (r *GormOrderRepository) Create(order *models.Order, details []models.OrderDetail) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range details {
		details[i].OrderID = order.ID
	}
	if len(details) > 0 {
		if err := r.db.Create(&details).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Details").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUser 获取用户订单详情
func (r *GormOrderRepository) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Details").Preload("Details.Course").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByUserAndCourse 获取某用户购买某课程的订单（经由订单明细关联）
func (r *GormOrderRepository) GetByUserAndCourse(userID, courseID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Details").
		Joins("JOIN order_details ON order_details.order_id = orders.id").
		Where("orders.user_id = ? AND order_details.course_id = ?", userID, courseID).
		Order("orders.id desc").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser 获取用户订单列表
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Details").Preload("Details.Course").
		Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
