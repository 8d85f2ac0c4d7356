package repository

import (
	"errors"

	"github.com/coursehub-next/internal/models"

	"gorm.io/gorm"
)

// CourseReviewRepository 课程评价数据访问接口
type CourseReviewRepository interface {
	Create(review *models.CourseReview) error
	GetByUserAndCourse(userID, courseID uint) (*models.CourseReview, error)
	ListByCourse(filter ReviewListFilter) ([]models.CourseReview, int64, error)
	AverageRating(courseID uint) (float64, error)
	WithTx(tx *gorm.DB) *GormCourseReviewRepository
}

// GormCourseReviewRepository GORM 实现
type GormCourseReviewRepository struct {
	db *gorm.DB
}

// NewCourseReviewRepository 创建课程评价仓库
func NewCourseReviewRepository(db *gorm.DB) *GormCourseReviewRepository {
	return &GormCourseReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCourseReviewRepository) WithTx(tx *gorm.DB) *GormCourseReviewRepository {
	if tx == nil {
		return r
	}
	return &GormCourseReviewRepository{db: tx}
}

// Create 创建评价
func (r *GormCourseReviewRepository) Create(review *models.CourseReview) error {
	return r.db.Create(review).Error
}

// GetByUserAndCourse 获取用户对课程的评价
func (r *GormCourseReviewRepository) GetByUserAndCourse(userID, courseID uint) (*models.CourseReview, error) {
	var review models.CourseReview
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// ListByCourse 获取课程评价列表
func (r *GormCourseReviewRepository) ListByCourse(filter ReviewListFilter) ([]models.CourseReview, int64, error) {
	var reviews []models.CourseReview
	query := r.db.Model(&models.CourseReview{}).Where("course_id = ?", filter.CourseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("User").Order("id desc").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// AverageRating 课程平均评分（无评价时为 0）
func (r *GormCourseReviewRepository) AverageRating(courseID uint) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.CourseReview{}).
		Where("course_id = ?", courseID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
