package service

import (
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"
)

// EnrollmentService 报名查询服务
type EnrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
}

// NewEnrollmentService 创建报名服务
func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{enrollmentRepo: enrollmentRepo}
}

// ListMyCourses 我的课程（报名记录 + 课程）
func (s *EnrollmentService) ListMyCourses(filter repository.EnrollmentListFilter) ([]models.CourseEnrollment, int64, error) {
	return s.enrollmentRepo.ListByUser(filter)
}

// GetEnrollment 获取某课程的报名记录（含订单），未报名返回 ErrNotEnrolled
func (s *EnrollmentService) GetEnrollment(userID, courseID uint) (*models.CourseEnrollment, error) {
	enrollment, err := s.enrollmentRepo.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, ErrNotEnrolled
	}
	return enrollment, nil
}
