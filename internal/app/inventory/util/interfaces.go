package util

import (
	"context"
	"time"

	"bentoshop/internal/app/inventory/entity"
)

// LookupCache интерфейс для кеширования справочных списков (категории, группы).
// Используется для dependency injection и упрощения тестирования.
type LookupCache interface {
	SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error
	SetBands(ctx context.Context, bands []entity.Band, ttl time.Duration) error
	GetBands(ctx context.Context) ([]entity.Band, error)
	DeleteBands(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
