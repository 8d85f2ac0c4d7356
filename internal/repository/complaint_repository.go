package repository

import (
	"github.com/coursehub-next/internal/models"

	"gorm.io/gorm"
)

// ComplaintRepository 投诉数据访问接口
type ComplaintRepository interface {
	Create(complaint *models.Complaint) error
	ListByUser(filter ComplaintListFilter) ([]models.Complaint, int64, error)
	WithTx(tx *gorm.DB) *GormComplaintRepository
}

// GormComplaintRepository GORM 实现
type GormComplaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository 创建投诉仓库
func NewComplaintRepository(db *gorm.DB) *GormComplaintRepository {
	return &GormComplaintRepository{db: db}
}

// WithTx 绑定事务
func (r *GormComplaintRepository) WithTx(tx *gorm.DB) *GormComplaintRepository {
	if tx == nil {
		return r
	}
	return &GormComplaintRepository{db: tx}
}

// Create 创建投诉
func (r *GormComplaintRepository) Create(complaint *models.Complaint) error {
	return r.db.Create(complaint).Error
}

// ListByUser 获取用户投诉列表
func (r *GormComplaintRepository) ListByUser(filter ComplaintListFilter) ([]models.Complaint, int64, error) {
	var complaints []models.Complaint
	query := r.db.Model(&models.Complaint{}).Where("user_id = ?", filter.UserID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("id desc").Find(&complaints).Error; err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}
