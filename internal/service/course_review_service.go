package service

import (
	"strings"

	"github.com/coursehub-next/internal/logger"
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"
)

// CourseReviewService 课程评价服务
type CourseReviewService struct {
	reviewRepo     repository.CourseReviewRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewCourseReviewService 创建课程评价服务
func NewCourseReviewService(
	reviewRepo repository.CourseReviewRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
) *CourseReviewService {
	return &CourseReviewService{
		reviewRepo:     reviewRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// CreateReviewInput 提交评价参数
type CreateReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

// CreateReview 提交课程评价，要求已报名且未评价过
func (s *CourseReviewService) CreateReview(userID, courseID uint, input CreateReviewInput) (*models.CourseReview, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingInvalid
	}

	course, err := s.courseRepo.GetPublishedByID(courseID)
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

	existing, err := s.reviewRepo.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyReviewed
	}

	review := &models.CourseReview{
		UserID:   userID,
		CourseID: courseID,
		Rating:   input.Rating,
		Comment:  strings.TrimSpace(input.Comment),
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	logger.Infow("course_review_created", "user_id", userID, "course_id", courseID, "rating", input.Rating)
	return review, nil
}

// ListCourseReviews 课程评价列表
func (s *CourseReviewService) ListCourseReviews(filter repository.ReviewListFilter) ([]models.CourseReview, int64, error) {
	return s.reviewRepo.ListByCourse(filter)
}
