package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatementCache интерфейс кеша выписок по кредитам
type StatementCache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Delete(key string) error
}

// statementCacheKey возвращает ключ кеша выписки по кредиту
func statementCacheKey(loanID uuid.UUID) string {
	return "statement:" + loanID.String()
}

// RedisCache реализует StatementCache поверх Redis
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisCache создает новый RedisCache
func NewRedisCache(addr string) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: rdb,
		ctx:    context.Background(),
	}
}

func (r *RedisCache) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

func (r *RedisCache) Delete(key string) error {
	return r.client.Del(r.ctx, key).Err()
}
