package repository

import (
	"context"
	"errors"
	"fmt"

	"bentoshop/internal/app/inventory/entity"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create создает новую категорию.
// Уникальность имени обеспечивается UNIQUE constraint-ом.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Create(category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrCategoryExists
		}
		return fmt.Errorf("failed to create category: %w", result.Error)
	}
	return nil
}

// GetAll получает все категории, отсортированные по имени
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	result := r.db.WithContext(ctx).Order("name ASC").Find(&categories)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get categories: %w", result.Error)
	}
	return categories, nil
}

// Delete удаляет категорию.
// Категория с товарами не удаляется: сначала явная проверка,
// затем FK constraint как защита от гонки между проверкой и удалением.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	var productCount int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("category_id = ?", id).
		Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to check products in category: %w", err)
	}
	if productCount > 0 {
		return ErrCategoryInUse
	}

	result := r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
