package service

import (
	"errors"
	"strings"
	"time"

	"github.com/coursehub-next/internal/constants"
	"github.com/coursehub-next/internal/logger"
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserJWTClaims 用户端 JWT 声明
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// UserAuthService 用户注册登录服务
type UserAuthService struct {
	userRepo    repository.UserRepository
	secretKey   string
	expireHours int
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(userRepo repository.UserRepository, secretKey string, expireHours int) *UserAuthService {
	if expireHours <= 0 {
		expireHours = 24
	}
	return &UserAuthService{
		userRepo:    userRepo,
		secretKey:   secretKey,
		expireHours: expireHours,
	}
}

// RegisterInput 注册参数
type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6,max=64"`
	DisplayName string `json:"display_name" binding:"max=64"`
}

// Register 注册新用户
func (s *UserAuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	logger.Infow("user_registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login 邮箱密码登录，成功返回用户与 JWT
func (s *UserAuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		return nil, "", ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		// 登录时间只是辅助信息，更新失败不阻断登录
		logger.Warnw("user_last_login_update_failed", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	logger.Infow("user_login_success", "user_id", user.ID)
	return user, token, nil
}

// GetByID 获取用户信息
func (s *UserAuthService) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// GenerateUserJWT 签发用户 JWT
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := UserJWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expireHours) * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

// ParseUserJWT 解析并校验用户 JWT
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	claims := &UserJWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
