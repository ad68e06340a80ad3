package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/config"
)

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, email string) (RateLimitResult, error)
}

type RateLimitResult struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

type redisRepository struct {
	client redis.Cmdable
	rate   config.RateConfig
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {

	slog.Info("Connecting to Redis", slog.String("host", cfg.RedisConnect.Host), slog.String("port", cfg.RedisConnect.Port))

	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("Successfully connected to Redis")

	return client, nil
}

func NewRateLimitRepo(client redis.Cmdable, rate config.RateConfig) RateLimitRepository {
	return &redisRepository{client: client, rate: rate}
}

// CheckLoginRateLimit records an attempt in a sorted set keyed by email and
// scored by unix time, trimming entries that fell out of the window.
func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, email string) (RateLimitResult, error) {

	logger := middleware.LoggerFromContext(ctx)

	key := "login_attempts:" + email
	now := time.Now().Unix()
	windowStart := now - int64(r.rate.WindowSize.Seconds())

	pipe := r.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.rate.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return RateLimitResult{}, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()

	if attempts <= r.rate.MaxAttempts {
		return RateLimitResult{Allowed: true, Remaining: int(r.rate.MaxAttempts - attempts)}, nil
	}

	scores, err := r.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return RateLimitResult{RetryAfter: r.rate.WindowSize}, fmt.Errorf("failed to get oldest attempt time: %w", err)
	}

	retryAfter := int64(r.rate.WindowSize.Seconds())
	if len(scores) > 0 {
		retryAfter = max(int64(scores[0].Score)+retryAfter-now, 0)
	}

	logger.Warn("Login rate limit exceeded", slog.String("email", email), slog.Int64("attempts", attempts))

	return RateLimitResult{RetryAfter: time.Duration(retryAfter) * time.Second}, nil
}
