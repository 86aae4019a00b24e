package repository

import (
	"context"
	"errors"

	"bentoshop/internal/app/inventory/entity"
)

// Типизированные ошибки репозиториев. Handlers и service layer работают
// только с ними - специфика движка БД (коды constraint-ов SQLite/PostgreSQL)
// не выходит за пределы этого пакета.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category with this name already exists")
	ErrCategoryInUse    = errors.New("category is referenced by products")

	ErrBandNotFound = errors.New("band not found")
	ErrBandExists   = errors.New("band with this name already exists")

	ErrArtistNotFound = errors.New("artist not found")
	ErrArtistInUse    = errors.New("artist is referenced by products")

	ErrProductNotFound = errors.New("product not found")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetAll(ctx context.Context) ([]entity.Category, error)
	Delete(ctx context.Context, id uint) error
}

type BandRepository interface {
	Create(ctx context.Context, band *entity.Band) error
	GetAll(ctx context.Context) ([]entity.Band, error)
	Delete(ctx context.Context, id uint) error
}

type ArtistRepository interface {
	Create(ctx context.Context, artist *entity.Artist) error
	GetWithBand(ctx context.Context, id uint) (*entity.ArtistWithBand, error)
	GetAllWithBands(ctx context.Context) ([]entity.ArtistWithBand, error)
	GetByBand(ctx context.Context, bandID uint) ([]entity.Artist, error)
	UpdateName(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetWithDetails(ctx context.Context, id uint) (*entity.ProductWithDetails, error)
	GetAllWithDetails(ctx context.Context) ([]entity.ProductWithDetails, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
}
