package services

import (
	"context"
	"encoding/json"
	"time"

	"elder-guardian-service/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService defines the Redis cache service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheDashboardStats(stats interface{}, expiration time.Duration) error
	GetDashboardStats(dest interface{}) error
	InvalidateDashboardStats() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// 仪表盘统计的缓存键
const dashboardStatsKey = "stats:dashboard"

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// NewRedisServiceWithClient 使用已有客户端创建服务（测试用）
func NewRedisServiceWithClient(client *redis.Client) InterfaceRedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheDashboardStats 缓存仪表盘统计数据
func (s *RedisService) CacheDashboardStats(stats interface{}, expiration time.Duration) error {
	return s.Set(dashboardStatsKey, stats, expiration)
}

// GetDashboardStats 读取缓存的仪表盘统计数据
func (s *RedisService) GetDashboardStats(dest interface{}) error {
	return s.Get(dashboardStatsKey, dest)
}

// InvalidateDashboardStats 新报警等写入后使缓存失效
func (s *RedisService) InvalidateDashboardStats() error {
	return s.Delete(dashboardStatsKey)
}
