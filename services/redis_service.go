package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gatekeeper-http-service/config"
)

// InterfaceRedisService defines the Redis cache service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheActiveVisitors(societyID uint, visitors interface{}) error
	GetActiveVisitors(societyID uint, dest interface{}) error
	InvalidateActiveVisitors(societyID uint)
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// Dashboard lists go stale quickly; keep the TTL short so a missed
// invalidation cannot hide a visitor for long.
const activeVisitorsTTL = 30 * time.Second

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

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

func activeVisitorsKey(societyID uint) string {
	return fmt.Sprintf("active_visitors:%d", societyID)
}

// CacheActiveVisitors caches the active visitor list for a society
func (s *RedisService) CacheActiveVisitors(societyID uint, visitors interface{}) error {
	return s.Set(activeVisitorsKey(societyID), visitors, activeVisitorsTTL)
}

// GetActiveVisitors gets the cached active visitor list for a society
func (s *RedisService) GetActiveVisitors(societyID uint, dest interface{}) error {
	return s.Get(activeVisitorsKey(societyID), dest)
}

// InvalidateActiveVisitors drops the cached list after a state change
func (s *RedisService) InvalidateActiveVisitors(societyID uint) {
	if err := s.Delete(activeVisitorsKey(societyID)); err != nil && err != redis.Nil {
		config.Warning("failed to invalidate active visitor cache for society %d: %v", societyID, err)
	}
}
