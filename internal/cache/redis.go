package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coursehub-next/internal/config"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client
var redisPrefix string
var redisEnabled bool

// 报名记录只增不删，已购状态可以安全缓存
const enrollmentPaidTTL = 10 * time.Minute

// InitRedis 初始化 Redis 客户端
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		redisEnabled = false
		return nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	redisPrefix = strings.TrimSpace(cfg.Prefix)
	if redisPrefix == "" {
		redisPrefix = "ch"
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	redisEnabled = true
	return nil
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return redisEnabled && redisClient != nil
}

// Client 获取 Redis 客户端
func Client() *redis.Client {
	if !Enabled() {
		return nil
	}
	return redisClient
}

func enrollmentPaidKey(userID, courseID uint) string {
	return fmt.Sprintf("%s:enrollment_paid:%d:%d", redisPrefix, userID, courseID)
}

// GetEnrollmentPaid 查询已购状态缓存。
// 未命中与 Redis 故障都返回 false，调用方回源数据库。
func GetEnrollmentPaid(ctx context.Context, userID, courseID uint) bool {
	if !Enabled() {
		return false
	}
	val, err := redisClient.Get(ctx, enrollmentPaidKey(userID, courseID)).Result()
	if err != nil {
		return false
	}
	return val == "1"
}

// SetEnrollmentPaid 写入已购状态缓存，失败不影响调用方
func SetEnrollmentPaid(ctx context.Context, userID, courseID uint) {
	if !Enabled() {
		return
	}
	_ = redisClient.Set(ctx, enrollmentPaidKey(userID, courseID), "1", enrollmentPaidTTL).Err()
}
