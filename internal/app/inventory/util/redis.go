package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bentoshop/internal/app/inventory/entity"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesCacheKey = "categories:all"
	bandsCacheKey      = "bands:all"
)

// RedisClient кеширует справочные списки, которые читаются на каждом
// экране UI и меняются редко
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	return r.setList(ctx, categoriesCacheKey, categories, ttl)
}

func (r *RedisClient) GetCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.getList(ctx, categoriesCacheKey, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *RedisClient) DeleteCategories(ctx context.Context) error {
	return r.deleteKey(ctx, categoriesCacheKey)
}

func (r *RedisClient) SetBands(ctx context.Context, bands []entity.Band, ttl time.Duration) error {
	return r.setList(ctx, bandsCacheKey, bands, ttl)
}

func (r *RedisClient) GetBands(ctx context.Context) ([]entity.Band, error) {
	var bands []entity.Band
	if err := r.getList(ctx, bandsCacheKey, &bands); err != nil {
		return nil, err
	}
	return bands, nil
}

func (r *RedisClient) DeleteBands(ctx context.Context) error {
	return r.deleteKey(ctx, bandsCacheKey)
}

func (r *RedisClient) setList(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}
	return nil
}

// getList возвращает nil без ошибки при отсутствии ключа (cache miss)
func (r *RedisClient) getList(ctx context.Context, key string, out interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (r *RedisClient) deleteKey(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from cache: %w", key, err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
