package repository

import (
	"errors"
	"strings"

	"github.com/coursehub-next/internal/constants"
	"github.com/coursehub-next/internal/models"

	"gorm.io/gorm"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	GetByID(id uint) (*models.Course, error)
	GetPublishedByID(id uint) (*models.Course, error)
	List(filter CourseListFilter) ([]models.Course, int64, error)
	WithTx(tx *gorm.DB) *GormCourseRepository
}

// GormCourseRepository GORM 实现
type GormCourseRepository struct {
	db *gorm.DB
}

// NewCourseRepository 创建课程仓库
func NewCourseRepository(db *gorm.DB) *GormCourseRepository {
	return &GormCourseRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCourseRepository) WithTx(tx *gorm.DB) *GormCourseRepository {
	if tx == nil {
		return r
	}
	return &GormCourseRepository{db: tx}
}

// GetByID 根据 ID 获取课程
func (r *GormCourseRepository) GetByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := r.db.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// GetPublishedByID 获取已上架课程详情（含分类、难度与课时）
func (r *GormCourseRepository) GetPublishedByID(id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.Preload("Category").Preload("Level").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order asc, id asc")
		}).
		Where("id = ? AND status = ?", id, constants.CourseStatusPublished).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

// List 课程列表
func (r *GormCourseRepository) List(filter CourseListFilter) ([]models.Course, int64, error) {
	var courses []models.Course
	query := r.db.Model(&models.Course{})

	if filter.OnlyPublished {
		query = query.Where("status = ?", constants.CourseStatusPublished)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.LevelID != 0 {
		query = query.Where("level_id = ?", filter.LevelID)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Preload("Category").Preload("Level").
		Order("id desc").Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}
