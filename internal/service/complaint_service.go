package service

import (
	"strings"

	"github.com/coursehub-next/internal/constants"
	"github.com/coursehub-next/internal/logger"
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"
)

// ComplaintService 课程投诉服务
type ComplaintService struct {
	complaintRepo  repository.ComplaintRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewComplaintService 创建投诉服务
func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo:  complaintRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// CreateComplaintInput 提交投诉参数
type CreateComplaintInput struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Content string `json:"content" binding:"required,max=5000"`
}

// CreateComplaint 提交课程投诉，要求已报名
func (s *ComplaintService) CreateComplaint(userID, courseID uint, input CreateComplaintInput) (*models.Complaint, error) {
	course, err := s.courseRepo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	enrolled, err := s.enrollmentRepo.ExistsByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	complaint := &models.Complaint{
		UserID:   userID,
		CourseID: courseID,
		Subject:  strings.TrimSpace(input.Subject),
		Content:  strings.TrimSpace(input.Content),
		Status:   constants.ComplaintStatusOpen,
	}
	if err := s.complaintRepo.Create(complaint); err != nil {
		return nil, err
	}

	logger.Infow("complaint_created", "user_id", userID, "course_id", courseID, "complaint_id", complaint.ID)
	return complaint, nil
}

// ListMyComplaints 我的投诉列表
func (s *ComplaintService) ListMyComplaints(filter repository.ComplaintListFilter) ([]models.Complaint, int64, error) {
	return s.complaintRepo.ListByUser(filter)
}
