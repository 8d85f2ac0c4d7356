package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/coursehub-next/internal/constants"
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCourseServiceTest(t *testing.T) (*CourseService, *LessonService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:course_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Level{},
		&models.Course{},
		&models.Lesson{},
		&models.CourseEnrollment{},
		&models.CourseReview{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	courseRepo := repository.NewCourseRepository(db)
	reviewRepo := repository.NewCourseReviewRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	courseSvc := NewCourseService(courseRepo, reviewRepo)
	lessonSvc := NewLessonService(courseRepo, lessonRepo, enrollmentRepo)
	return courseSvc, lessonSvc, db
}

func seedPublishedCourse(t *testing.T, db *gorm.DB) *models.Course {
	t.Helper()
	course := &models.Course{
		Title:    "分布式系统设计",
		Price:    money(t, "200.00"),
		SellerID: 1,
		Status:   constants.CourseStatusPublished,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course failed: %v", err)
	}
	lessons := []models.Lesson{
		{CourseID: course.ID, Title: "第一课", Content: "正文A", VideoURL: "https://v/1", SortOrder: 1},
		{CourseID: course.ID, Title: "第二课", Content: "正文B", VideoURL: "https://v/2", SortOrder: 2},
	}
	if err := db.Create(&lessons).Error; err != nil {
		t.Fatalf("create lessons failed: %v", err)
	}
	return course
}

func TestGetCourseDetail(t *testing.T) {
	courseSvc, _, db := setupCourseServiceTest(t)
	course := seedPublishedCourse(t, db)

	reviews := []models.CourseReview{
		{UserID: 1, CourseID: course.ID, Rating: 5},
		{UserID: 2, CourseID: course.ID, Rating: 4},
	}
	if err := db.Create(&reviews).Error; err != nil {
		t.Fatalf("create reviews failed: %v", err)
	}

	detail, err := courseSvc.GetCourseDetail(course.ID)
	if err != nil {
		t.Fatalf("GetCourseDetail error: %v", err)
	}
	if !detail.EffectivePrice.Decimal.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("expected effective price 200.00, got %s", detail.EffectivePrice.String())
	}
	if detail.AverageRating != 4.5 {
		t.Fatalf("expected average rating 4.5, got %v", detail.AverageRating)
	}
	if len(detail.Lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(detail.Lessons))
	}
	// 详情页不泄露课时内容
	for _, lesson := range detail.Lessons {
		if lesson.Content != "" || lesson.VideoURL != "" {
			t.Fatalf("lesson content leaked in course detail: %+v", lesson)
		}
	}
}

func TestGetCourseDetailNotPublished(t *testing.T) {
	courseSvc, _, db := setupCourseServiceTest(t)
	course := &models.Course{
		Title:    "草稿课程",
		Price:    money(t, "10.00"),
		SellerID: 1,
		Status:   constants.CourseStatusDraft,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course failed: %v", err)
	}

	if _, err := courseSvc.GetCourseDetail(course.ID); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound for draft course, got %v", err)
	}
}

func TestListCourseLessonsGating(t *testing.T) {
	_, lessonSvc, db := setupCourseServiceTest(t)
	course := seedPublishedCourse(t, db)

	// 匿名访问只有目录
	lessons, err := lessonSvc.ListCourseLessons(course.ID, 0)
	if err != nil {
		t.Fatalf("ListCourseLessons error: %v", err)
	}
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(lessons))
	}
	for _, lesson := range lessons {
		if lesson.Content != "" || lesson.VideoURL != "" {
			t.Fatalf("content leaked to anonymous user: %+v", lesson)
		}
	}

	enrollment := &models.CourseEnrollment{UserID: 9, CourseID: course.ID, OrderID: 1, EnrollmentDate: time.Now()}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("create enrollment failed: %v", err)
	}

	// 已报名用户能看到内容
	lessons, err = lessonSvc.ListCourseLessons(course.ID, 9)
	if err != nil {
		t.Fatalf("ListCourseLessons error: %v", err)
	}
	if lessons[0].Content == "" || lessons[0].VideoURL == "" {
		t.Fatalf("expected content for enrolled user, got %+v", lessons[0])
	}
}

func TestGetLessonRequiresEnrollment(t *testing.T) {
	_, lessonSvc, db := setupCourseServiceTest(t)
	course := seedPublishedCourse(t, db)

	var lesson models.Lesson
	if err := db.Where("course_id = ?", course.ID).First(&lesson).Error; err != nil {
		t.Fatalf("fetch lesson failed: %v", err)
	}

	if _, err := lessonSvc.GetLesson(lesson.ID, 9); !errors.Is(err, ErrNotEnrolled) {
		t.Fatalf("expected ErrNotEnrolled, got %v", err)
	}

	enrollment := &models.CourseEnrollment{UserID: 9, CourseID: course.ID, OrderID: 1, EnrollmentDate: time.Now()}
	if err := db.Create(enrollment).Error; err != nil {
		t.Fatalf("create enrollment failed: %v", err)
	}

	got, err := lessonSvc.GetLesson(lesson.ID, 9)
	if err != nil {
		t.Fatalf("GetLesson error: %v", err)
	}
	if got.Content == "" {
		t.Fatalf("expected lesson content for enrolled user")
	}
}
