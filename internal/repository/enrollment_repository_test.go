package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/coursehub-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupEnrollmentRepoTest(t *testing.T) (*GormEnrollmentRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:enrollment_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Course{},
		&models.Order{},
		&models.OrderDetail{},
		&models.CourseEnrollment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewEnrollmentRepository(db), db
}

func TestEnrollmentUniqueIndex(t *testing.T) {
	repo, _ := setupEnrollmentRepoTest(t)

	first := &models.CourseEnrollment{UserID: 1, CourseID: 2, OrderID: 10, EnrollmentDate: time.Now()}
	if err := repo.Create(first); err != nil {
		t.Fatalf("first create error: %v", err)
	}

	// 同一 (用户, 课程) 第二条必须撞唯一索引
	second := &models.CourseEnrollment{UserID: 1, CourseID: 2, OrderID: 11, EnrollmentDate: time.Now()}
	err := repo.Create(second)
	if err == nil {
		t.Fatalf("expected unique index violation")
	}

	// 不同课程不受影响
	third := &models.CourseEnrollment{UserID: 1, CourseID: 3, OrderID: 12, EnrollmentDate: time.Now()}
	if err := repo.Create(third); err != nil {
		t.Fatalf("third create error: %v", err)
	}
}

func TestEnrollmentExistsByUserAndCourse(t *testing.T) {
	repo, _ := setupEnrollmentRepoTest(t)

	exists, err := repo.ExistsByUserAndCourse(1, 2)
	if err != nil {
		t.Fatalf("ExistsByUserAndCourse error: %v", err)
	}
	if exists {
		t.Fatalf("expected no enrollment yet")
	}

	if err := repo.Create(&models.CourseEnrollment{UserID: 1, CourseID: 2, OrderID: 10, EnrollmentDate: time.Now()}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	exists, err = repo.ExistsByUserAndCourse(1, 2)
	if err != nil {
		t.Fatalf("ExistsByUserAndCourse error: %v", err)
	}
	if !exists {
		t.Fatalf("expected enrollment to exist")
	}
}

func TestEnrollmentListByUserOrder(t *testing.T) {
	repo, _ := setupEnrollmentRepoTest(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		enrollment := &models.CourseEnrollment{
			UserID:         7,
			CourseID:       uint(i + 1),
			OrderID:        uint(100 + i),
			EnrollmentDate: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(enrollment); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	enrollments, total, err := repo.ListByUser(EnrollmentListFilter{UserID: 7, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if total != 3 || len(enrollments) != 3 {
		t.Fatalf("expected 3 enrollments, got total=%d len=%d", total, len(enrollments))
	}
	// 最近报名的排在最前
	if enrollments[0].CourseID != 3 {
		t.Fatalf("expected most recent enrollment first, got course %d", enrollments[0].CourseID)
	}
}
