package config

import (
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewRedisClient builds the optional cache client. A nil return means
// caching is disabled; callers must tolerate that.
func NewRedisClient(cfg Config, zlog *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		zlog.Info("REDIS_ADDR not set, room list cache disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	zlog.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr))
	return client
}
