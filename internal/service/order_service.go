package service

import (
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"
)

// OrderService 订单查询服务。
// 订单仅由对账流程创建，用户侧只读。
type OrderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetUserOrder 获取用户订单详情
func (s *OrderService) GetUserOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders 用户订单列表
func (s *OrderService) ListUserOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(filter)
}
