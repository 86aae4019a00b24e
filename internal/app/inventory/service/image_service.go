package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"bentoshop/internal/app/inventory/entity"
	"bentoshop/internal/app/inventory/storage"
	"bentoshop/internal/app/inventory/watermark"
	"bentoshop/pkg/logger"
	"bentoshop/pkg/metrics"

	"github.com/google/uuid"
)

// allowedImageTypes - допустимые content types загружаемых изображений
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ImageService управляет загрузкой и выдачей изображений товаров
type ImageService struct {
	store         storage.Store
	watermarkText string
}

// NewImageService создает новый сервис изображений
func NewImageService(store storage.Store, watermarkText string) *ImageService {
	return &ImageService{
		store:         store,
		watermarkText: watermarkText,
	}
}

// Upload сохраняет файл в хранилище и возвращает URL для выдачи.
// Content type проверяется по allow-list-у, если клиент его передал.
// При applyWatermark изображение перекодируется с водяными знаками;
// если декодирование не удалось, сохраняется оригинал.
func (s *ImageService) Upload(ctx context.Context, originalName, contentType string, data []byte, applyWatermark bool) (string, error) {
	if contentType != "" && !allowedImageTypes[contentType] {
		return "", ErrUnsupportedFileType
	}

	ext := strings.ToLower(path.Ext(originalName))

	if applyWatermark {
		marked, err := watermark.Apply(data, s.watermarkText)
		if err != nil {
			logger.Warn().Err(err).Str("file", originalName).Msg("Watermark failed, storing original")
		} else {
			data = marked
			contentType = "image/jpeg"
			ext = ".jpg"
		}
	}

	key := makeKey(ext)
	meta := storage.Metadata{
		ContentType:  contentType,
		OriginalName: originalName,
		UploadedAt:   time.Now(),
	}

	start := time.Now()
	if err := s.store.Put(ctx, key, data, meta); err != nil {
		metrics.RecordStorageError(serviceName, s.store.Backend(), "put")
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	metrics.RecordStorageOperation(serviceName, s.store.Backend(), "put", time.Since(start))

	return "/images/" + key, nil
}

// Get получает изображение по ключу.
// Отсутствующий ключ возвращается как storage.ErrNotFound - handler
// подменяет его на placeholder.
func (s *ImageService) Get(ctx context.Context, key string) ([]byte, storage.Metadata, error) {
	start := time.Now()
	data, meta, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			metrics.RecordStorageError(serviceName, s.store.Backend(), "get")
		}
		return nil, storage.Metadata{}, err
	}
	metrics.RecordStorageOperation(serviceName, s.store.Backend(), "get", time.Since(start))
	return data, meta, nil
}

// Delete удаляет изображение; удаление отсутствующего ключа не ошибка
func (s *ImageService) Delete(ctx context.Context, key string) error {
	start := time.Now()
	if err := s.store.Delete(ctx, key); err != nil {
		metrics.RecordStorageError(serviceName, s.store.Backend(), "delete")
		return fmt.Errorf("failed to delete image: %w", err)
	}
	metrics.RecordStorageOperation(serviceName, s.store.Backend(), "delete", time.Since(start))
	return nil
}

// List перечисляет сохраненные изображения, новые первыми
func (s *ImageService) List(ctx context.Context) ([]entity.ImageInfo, error) {
	start := time.Now()
	objects, err := s.store.List(ctx)
	if err != nil {
		metrics.RecordStorageError(serviceName, s.store.Backend(), "list")
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	metrics.RecordStorageOperation(serviceName, s.store.Backend(), "list", time.Since(start))

	sort.Slice(objects, func(i, j int) bool {
		return objects[i].UploadedAt.After(objects[j].UploadedAt)
	})

	images := make([]entity.ImageInfo, 0, len(objects))
	for _, obj := range objects {
		images = append(images, entity.ImageInfo{
			Key:        obj.Key,
			URL:        "/images/" + obj.Key,
			Size:       obj.Size,
			UploadedAt: obj.UploadedAt,
		})
	}
	return images, nil
}

// makeKey генерирует устойчивый к коллизиям ключ: метка времени плюс
// случайный суффикс плюс исходное расширение. Конкурентные загрузки в один
// тик часов не перезаписывают друг друга.
func makeKey(ext string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), token, ext)
}
