package repository

import (
	"context"
	"errors"
	"fmt"

	"bentoshop/internal/app/inventory/entity"

	"gorm.io/gorm"
)

type artistRepository struct {
	db *gorm.DB
}

// NewArtistRepository создает новый репозиторий артистов
func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &artistRepository{db: db}
}

// Create создает нового артиста; band_id обязателен
func (r *artistRepository) Create(ctx context.Context, artist *entity.Artist) error {
	result := r.db.WithContext(ctx).Create(artist)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrBandNotFound
		}
		return fmt.Errorf("failed to create artist: %w", result.Error)
	}
	return nil
}

// GetWithBand получает артиста вместе с именем его группы
func (r *artistRepository) GetWithBand(ctx context.Context, id uint) (*entity.ArtistWithBand, error) {
	var artist entity.ArtistWithBand
	result := r.db.WithContext(ctx).Raw(`
		SELECT a.*, b.name AS band_name
		FROM artists a
		JOIN bands b ON a.band_id = b.id
		WHERE a.id = ?`, id).Scan(&artist)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get artist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrArtistNotFound
	}
	return &artist, nil
}

// GetAllWithBands получает всех артистов с именами групп,
// отсортированных по группе и имени артиста
func (r *artistRepository) GetAllWithBands(ctx context.Context) ([]entity.ArtistWithBand, error) {
	var artists []entity.ArtistWithBand
	result := r.db.WithContext(ctx).Raw(`
		SELECT a.*, b.name AS band_name
		FROM artists a
		JOIN bands b ON a.band_id = b.id
		ORDER BY b.name, a.name`).Scan(&artists)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get artists: %w", result.Error)
	}
	return artists, nil
}

// GetByBand получает артистов одной группы, отсортированных по имени
func (r *artistRepository) GetByBand(ctx context.Context, bandID uint) ([]entity.Artist, error) {
	var artists []entity.Artist
	result := r.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Order("name ASC").
		Find(&artists)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get artists for band: %w", result.Error)
	}
	return artists, nil
}

// UpdateName обновляет имя артиста
func (r *artistRepository) UpdateName(ctx context.Context, id uint, name string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Artist{}).
		Where("id = ?", id).
		Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("failed to update artist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// Delete удаляет артиста.
// Артист, на которого ссылаются товары, не удаляется (RESTRICT-семантика):
// сначала явная проверка, затем FK constraint как защита от гонки.
func (r *artistRepository) Delete(ctx context.Context, id uint) error {
	var productCount int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("artist_id = ?", id).
		Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check products for artist: %w", err)
	}
	if productCount > 0 {
		return ErrArtistInUse
	}

	result := r.db.WithContext(ctx).Delete(&entity.Artist{}, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrArtistInUse
		}
		return fmt.Errorf("failed to delete artist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrArtistNotFound
	}
	return nil
}
