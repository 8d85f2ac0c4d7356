package service

import (
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"
)

// LessonService 课时服务，内容仅对已报名用户开放
type LessonService struct {
	courseRepo     repository.CourseRepository
	lessonRepo     repository.LessonRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewLessonService 创建课时服务
func NewLessonService(
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	enrollmentRepo repository.EnrollmentRepository,
) *LessonService {
	return &LessonService{
		courseRepo:     courseRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// ListCourseLessons 获取课程课时，userID 未报名时清空内容字段
func (s *LessonService) ListCourseLessons(courseID, userID uint) ([]models.Lesson, error) {
	course, err := s.courseRepo.GetPublishedByID(courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	lessons, err := s.lessonRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	enrolled := false
	if userID != 0 {
		enrolled, err = s.enrollmentRepo.ExistsByUserAndCourse(userID, courseID)
		if err != nil {
			return nil, err
		}
	}
	if !enrolled {
		for i := range lessons {
			lessons[i].Content = ""
			lessons[i].VideoURL = ""
		}
	}
	return lessons, nil
}

// GetLesson 获取单个课时内容，要求已报名
func (s *LessonService) GetLesson(lessonID, userID uint) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrNotFound
	}

	enrolled, err := s.enrollmentRepo.ExistsByUserAndCourse(userID, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}
	return lesson, nil
}
