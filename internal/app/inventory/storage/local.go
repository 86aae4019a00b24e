package storage

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// localStore хранит изображения в одной директории на диске.
// Content type восстанавливается из расширения, время загрузки - из mtime.
type localStore struct {
	root string
}

// NewLocalStore создает файловый бэкенд; директория создается при первом обращении
func NewLocalStore(root string) (Store, error) {
	if !filepath.IsAbs(root) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("storage/local: getwd: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage/local: mkdir %s: %w", root, err)
	}
	return &localStore{root: root}, nil
}

func (s *localStore) Backend() string { return "local" }

func (s *localStore) abs(key string) string {
	// Ключи генерируются сервисом, но базовое имя берем на случай
	// прямых запросов с path separator-ами
	return filepath.Join(s.root, filepath.Base(key))
}

func (s *localStore) Put(ctx context.Context, key string, data []byte, meta Metadata) error {
	if err := os.WriteFile(s.abs(key), data, 0o644); err != nil {
		return fmt.Errorf("storage/local: put %s: %w", key, err)
	}
	return nil
}

func (s *localStore) Get(ctx context.Context, key string) ([]byte, Metadata, error) {
	full := s.abs(key)

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Metadata{}, ErrNotFound
		}
		return nil, Metadata{}, fmt.Errorf("storage/local: get %s: %w", key, err)
	}

	meta := Metadata{
		ContentType:  mime.TypeByExtension(filepath.Ext(key)),
		OriginalName: key,
	}
	if meta.ContentType == "" {
		meta.ContentType = "application/octet-stream"
	}
	if info, err := os.Stat(full); err == nil {
		meta.UploadedAt = info.ModTime()
	}

	return data, meta, nil
}

// Delete идемпотентен: отсутствие файла не считается ошибкой
func (s *localStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.abs(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}

func (s *localStore) List(ctx context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("storage/local: list: %w", err)
	}

	var objects []Object
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{
			Key:        e.Name(),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
	}
	return objects, nil
}
