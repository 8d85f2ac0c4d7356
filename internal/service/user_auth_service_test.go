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
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewUserAuthService(repository.NewUserRepository(db), "test-secret-key", 1)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:       "Student@Example.com",
		Password:    "secret123",
		DisplayName: "小王",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "student@example.com" {
		t.Fatalf("expected lowercased email, got %s", user.Email)
	}
	if user.PasswordHash == "secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}

	loggedIn, token, err := svc.Login("student@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if loggedIn.ID != user.ID || token == "" {
		t.Fatalf("unexpected login result: user=%d token=%q", loggedIn.ID, token)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	input := RegisterInput{Email: "dup@example.com", Password: "secret123"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register error: %v", err)
	}
	if _, err := svc.Register(input); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{Email: "u@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register error: %v", err)
	}
	if _, _, err := svc.Login("u@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	svc, db := setupUserAuthServiceTest(t)

	if _, err := svc.Register(RegisterInput{Email: "banned@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register error: %v", err)
	}
	if err := db.Model(&models.User{}).
		Where("email = ?", "banned@example.com").
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, err := svc.Login("banned@example.com", "secret123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestParseUserJWTRejectsTampered(t *testing.T) {
	svc, _ := setupUserAuthServiceTest(t)

	user := &models.User{ID: 5, Email: "x@example.com"}
	token, err := svc.GenerateUserJWT(user)
	if err != nil {
		t.Fatalf("GenerateUserJWT error: %v", err)
	}

	other := NewUserAuthService(nil, "another-secret", 1)
	if _, err := other.ParseUserJWT(token); err == nil {
		t.Fatalf("expected token signed with different secret to be rejected")
	}
}
