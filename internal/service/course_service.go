package service

import (
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"
)

// CourseService 课程目录服务
type CourseService struct {
	courseRepo repository.CourseRepository
	reviewRepo repository.CourseReviewRepository
}

// NewCourseService 创建课程服务
func NewCourseService(courseRepo repository.CourseRepository, reviewRepo repository.CourseReviewRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo, reviewRepo: reviewRepo}
}

// CourseDetail 课程详情（含平均评分）
type CourseDetail struct {
	models.Course
	EffectivePrice models.Money `json:"effective_price"`
	AverageRating  float64      `json:"average_rating"`
}

// ListCourses 已上架课程列表
func (s *CourseService) ListCourses(filter repository.CourseListFilter) ([]models.Course, int64, error) {
	filter.OnlyPublished = true
	return s.courseRepo.List(filter)
}

// GetCourseDetail 已上架课程详情
func (s *CourseService) GetCourseDetail(id uint) (*CourseDetail, error) {
	course, err := s.courseRepo.GetPublishedByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	avg, err := s.reviewRepo.AverageRating(id)
	if err != nil {
		return nil, err
	}

	// 课时内容仅对已报名用户开放，详情页只保留目录信息
	for i := range course.Lessons {
		course.Lessons[i].Content = ""
		course.Lessons[i].VideoURL = ""
	}

	return &CourseDetail{
		Course:         *course,
		EffectivePrice: course.EffectivePrice(),
		AverageRating:  avg,
	}, nil
}
