// Package storage реализует блоб-хранилище загруженных изображений.
// Два взаимозаменяемых бэкенда: локальная файловая система и S3-совместимое
// object storage (AWS S3, MinIO, R2). Бэкенд выбирается при старте и не
// смешивается в рамках одного деплоя.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается при отсутствии объекта по ключу.
// Handlers отдают вместо него placeholder, а не 404.
var ErrNotFound = errors.New("storage: object not found")

// Metadata - метаданные загруженного объекта
type Metadata struct {
	ContentType  string
	OriginalName string
	UploadedAt   time.Time
}

// Object - элемент листинга хранилища
type Object struct {
	Key        string
	Size       int64
	UploadedAt time.Time
}

// Store - общий контракт бэкендов хранилища
type Store interface {
	Put(ctx context.Context, key string, data []byte, meta Metadata) error
	Get(ctx context.Context, key string) ([]byte, Metadata, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Object, error)
	Backend() string
}
