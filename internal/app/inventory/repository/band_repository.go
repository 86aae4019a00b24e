package repository

import (
	"context"
	"errors"
	"fmt"

	"bentoshop/internal/app/inventory/entity"

	"gorm.io/gorm"
)

type bandRepository struct {
	db *gorm.DB
}

// NewBandRepository создает новый репозиторий групп
func NewBandRepository(db *gorm.DB) BandRepository {
	return &bandRepository{db: db}
}

// Create создает новую группу
func (r *bandRepository) Create(ctx context.Context, band *entity.Band) error {
	result := r.db.WithContext(ctx).Create(band)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrBandExists
		}
		return fmt.Errorf("failed to create band: %w", result.Error)
	}
	return nil
}

// GetAll получает все группы, отсортированные по имени
func (r *bandRepository) GetAll(ctx context.Context) ([]entity.Band, error) {
	var bands []entity.Band
	result := r.db.WithContext(ctx).Order("name ASC").Find(&bands)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get bands: %w", result.Error)
	}
	return bands, nil
}

// Delete удаляет группу; её артисты удаляются каскадом на уровне БД
func (r *bandRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Band{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete band: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBandNotFound
	}
	return nil
}
