package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/productify/productify/internal/config"
)

const keyUploadUser = "upload:user:%s"

// Defaults allow short bursts of uploads while keeping the sustained rate
// low; image uploads are not a high-frequency operation.
const (
	uploadRate  = 0.5
	uploadBurst = 5
)

// UploadLimiter throttles image uploads per caller. It is optional: without
// a configured redis address every request is allowed.
type UploadLimiter struct {
	enabled bool
	bucket  *TokenBucket
}

func NewUploadLimiter(cfg config.Config) *UploadLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &UploadLimiter{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	return &UploadLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
	}
}

// Allow reports whether the caller may upload now. Limiter backend errors
// fail open: an unavailable redis must not block uploads.
func (l *UploadLimiter) Allow(ctx context.Context, callerID string) (*RateLimitResult, error) {
	if l == nil || !l.enabled {
		return &RateLimitResult{Allowed: true}, nil
	}

	key := fmt.Sprintf(keyUploadUser, callerID)
	res, err := l.bucket.Allow(ctx, key, uploadRate, uploadBurst)
	if err != nil {
		return &RateLimitResult{Allowed: true, RetryAfter: time.Duration(0)}, err
	}
	return res, nil
}
