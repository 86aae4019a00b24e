package repository

import (
	"context"
	"errors"
	"fmt"

	"bentoshop/internal/app/inventory/entity"

	"gorm.io/gorm"
)

// productDetailsQuery - joined read товара: имя категории всегда,
// имена артиста и группы через LEFT JOIN (null если артист не задан)
const productDetailsQuery = `
	SELECT p.*, c.name AS category_name, a.name AS artist_name, b.name AS band_name
	FROM products p
	JOIN categories c ON p.category_id = c.id
	LEFT JOIN artists a ON p.artist_id = a.id
	LEFT JOIN bands b ON a.band_id = b.id`

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает новый товар
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Create(product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to create product: %w", result.Error)
	}
	return nil
}

// GetWithDetails получает товар с отображаемыми именами связанных сущностей
func (r *productRepository) GetWithDetails(ctx context.Context, id uint) (*entity.ProductWithDetails, error) {
	var product entity.ProductWithDetails
	result := r.db.WithContext(ctx).
		Raw(productDetailsQuery+" WHERE p.id = ?", id).
		Scan(&product)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// GetAllWithDetails получает все товары с joined-полями,
// отсортированные от новых к старым
func (r *productRepository) GetAllWithDetails(ctx context.Context) ([]entity.ProductWithDetails, error) {
	var products []entity.ProductWithDetails
	result := r.db.WithContext(ctx).
		Raw(productDetailsQuery + " ORDER BY p.created_at DESC").
		Scan(&products)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get products: %w", result.Error)
	}
	return products, nil
}

// Update применяет все поля товара одним statement-ом.
// updated_at обновляется автоматически.
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"product_name":   product.ProductName,
			"variant":        product.Variant,
			"image_url":      product.ImageURL,
			"price":          product.Price,
			"artist_id":      product.ArtistID,
			"category_id":    product.CategoryID,
			"stock_quantity": product.StockQuantity,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete удаляет товар
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
