package cache

import (
	"context"
	"testing"

	"github.com/coursehub-next/internal/config"
)

func TestEnrollmentPaidCacheDisabled(t *testing.T) {
	// 未启用 Redis 时读写都安全降级
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("InitRedis error: %v", err)
	}
	if Enabled() {
		t.Fatalf("expected cache disabled")
	}
	if Client() != nil {
		t.Fatalf("expected nil client when disabled")
	}

	ctx := context.Background()
	SetEnrollmentPaid(ctx, 7, 9)
	if GetEnrollmentPaid(ctx, 7, 9) {
		t.Fatalf("expected cache miss when disabled")
	}
}

func TestEnrollmentPaidKey(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 6379, Prefix: "unit"}); err != nil {
		t.Fatalf("InitRedis error: %v", err)
	}
	if got := enrollmentPaidKey(7, 9); got != "unit:enrollment_paid:7:9" {
		t.Fatalf("unexpected cache key: %s", got)
	}
}
