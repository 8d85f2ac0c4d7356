package repository

import (
	"errors"

	"github.com/coursehub-next/internal/models"

	"gorm.io/gorm"
)

// EnrollmentRepository 课程报名数据访问接口
type EnrollmentRepository interface {
	Create(enrollment *models.CourseEnrollment) error
	ExistsByUserAndCourse(userID, courseID uint) (bool, error)
	GetByUserAndCourse(userID, courseID uint) (*models.CourseEnrollment, error)
	ListByUser(filter EnrollmentListFilter) ([]models.CourseEnrollment, int64, error)
	WithTx(tx *gorm.DB) *GormEnrollmentRepository
}

// GormEnrollmentRepository GORM 实现
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository 创建报名仓库
func NewEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormEnrollmentRepository) WithTx(tx *gorm.DB) *GormEnrollmentRepository {
	if tx == nil {
		return r
	}
	return &GormEnrollmentRepository{db: tx}
}

// Create 创建报名记录。
// (user_id, course_id) 唯一索引冲突时原样返回 gorm.ErrDuplicatedKey，
// 由上层区分"重复报名"与其他存储错误。
func (r *GormEnrollmentRepository) Create(enrollment *models.CourseEnrollment) error {
	return r.db.Create(enrollment).Error
}

// ExistsByUserAndCourse 判断 (用户, 课程) 是否已报名
func (r *GormEnrollmentRepository) ExistsByUserAndCourse(userID, courseID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CourseEnrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetByUserAndCourse 获取 (用户, 课程) 的报名记录（含订单）
func (r *GormEnrollmentRepository) GetByUserAndCourse(userID, courseID uint) (*models.CourseEnrollment, error) {
	var enrollment models.CourseEnrollment
	err := r.db.Preload("Order").Preload("Order.Details").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &enrollment, nil
}

// ListByUser 获取用户报名列表（我的课程）
func (r *GormEnrollmentRepository) ListByUser(filter EnrollmentListFilter) ([]models.CourseEnrollment, int64, error) {
	var enrollments []models.CourseEnrollment
	query := r.db.Model(&models.CourseEnrollment{}).Where("user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Course").
		Order("enrollment_date desc, id desc").
		Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}
