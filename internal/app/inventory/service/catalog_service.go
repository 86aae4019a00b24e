package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bentoshop/internal/app/inventory/entity"
	"bentoshop/internal/app/inventory/repository"
	"bentoshop/internal/app/inventory/util"
	"bentoshop/pkg/logger"
	"bentoshop/pkg/metrics"
)

const (
	serviceName    = "inventory-service"
	lookupCacheTTL = time.Hour
)

// CatalogService обрабатывает бизнес-логику инвентаря.
// Координирует репозитории, Redis кеш справочников и Kafka producer.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	bandRepo     repository.BandRepository
	artistRepo   repository.ArtistRepository
	productRepo  repository.ProductRepository
	cache        util.LookupCache
	publisher    util.MessagePublisher
}

// NewCatalogService создает новый сервис инвентаря с внедрением зависимостей
func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	bandRepo repository.BandRepository,
	artistRepo repository.ArtistRepository,
	productRepo repository.ProductRepository,
	cache util.LookupCache,
	publisher util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		bandRepo:     bandRepo,
		artistRepo:   artistRepo,
		productRepo:  productRepo,
		cache:        cache,
		publisher:    publisher,
	}
}

// === CATEGORIES ===

// CreateCategory создает новую категорию и инвалидирует кеш
func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	category := &entity.Category{Name: strings.TrimSpace(req.Name)}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCategories(ctx)
	return category, nil
}

// GetAllCategories получает все категории с кешированием в Redis.
// Сначала проверяет кеш, при промахе загружает из БД и кеширует.
func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err == nil && len(cached) > 0 {
		metrics.RecordCacheHit(serviceName, "categories")
		return cached, nil
	}
	metrics.RecordCacheMiss(serviceName, "categories")

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if err := s.cache.SetCategories(ctx, categories, lookupCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}

	return categories, nil
}

// DeleteCategory удаляет категорию и инвалидирует кеш.
// Категория, на которую ссылаются товары, не удаляется.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryInUse):
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCategories(ctx)
	return nil
}

// === BANDS ===

// CreateBand создает новую группу и инвалидирует кеш
func (s *CatalogService) CreateBand(ctx context.Context, req *entity.CreateBandRequest) (*entity.Band, error) {
	band := &entity.Band{Name: strings.TrimSpace(req.Name)}

	if err := s.bandRepo.Create(ctx, band); err != nil {
		if errors.Is(err, repository.ErrBandExists) {
			return nil, ErrBandExists
		}
		return nil, fmt.Errorf("failed to create band: %w", err)
	}

	s.invalidateBands(ctx)
	return band, nil
}

// GetAllBands получает все группы с кешированием в Redis
func (s *CatalogService) GetAllBands(ctx context.Context) ([]entity.Band, error) {
	cached, err := s.cache.GetBands(ctx)
	if err == nil && len(cached) > 0 {
		metrics.RecordCacheHit(serviceName, "bands")
		return cached, nil
	}
	metrics.RecordCacheMiss(serviceName, "bands")

	bands, err := s.bandRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bands: %w", err)
	}

	if err := s.cache.SetBands(ctx, bands, lookupCacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache bands")
	}

	return bands, nil
}

// DeleteBand удаляет группу; артисты группы удаляются каскадом
func (s *CatalogService) DeleteBand(ctx context.Context, id uint) error {
	if err := s.bandRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBandNotFound) {
			return ErrBandNotFound
		}
		return fmt.Errorf("failed to delete band: %w", err)
	}

	s.invalidateBands(ctx)
	return nil
}

// GetBandArtists получает артистов одной группы.
// Для неизвестной группы возвращает пустой список, а не ошибку.
func (s *CatalogService) GetBandArtists(ctx context.Context, bandID uint) ([]entity.Artist, error) {
	artists, err := s.artistRepo.GetByBand(ctx, bandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get band artists: %w", err)
	}
	return artists, nil
}

// === ARTISTS ===

// CreateArtist создает нового артиста; артист обязан принадлежать группе.
// После вставки перечитывает joined-строку для ответа с именем группы.
func (s *CatalogService) CreateArtist(ctx context.Context, req *entity.CreateArtistRequest) (*entity.ArtistWithBand, error) {
	artist := &entity.Artist{
		Name:   strings.TrimSpace(req.Name),
		BandID: req.BandID,
	}

	if err := s.artistRepo.Create(ctx, artist); err != nil {
		if errors.Is(err, repository.ErrBandNotFound) {
			return nil, ErrBandNotFound
		}
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}

	created, err := s.artistRepo.GetWithBand(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back artist: %w", err)
	}
	return created, nil
}

// GetAllArtists получает всех артистов с именами их групп
func (s *CatalogService) GetAllArtists(ctx context.Context) ([]entity.ArtistWithBand, error) {
	artists, err := s.artistRepo.GetAllWithBands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get artists: %w", err)
	}
	return artists, nil
}

// UpdateArtist обновляет имя артиста и перечитывает joined-строку
func (s *CatalogService) UpdateArtist(ctx context.Context, id uint, req *entity.UpdateArtistRequest) (*entity.ArtistWithBand, error) {
	if err := s.artistRepo.UpdateName(ctx, id, strings.TrimSpace(req.Name)); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return nil, ErrArtistNotFound
		}
		return nil, fmt.Errorf("failed to update artist: %w", err)
	}

	artist, err := s.artistRepo.GetWithBand(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back artist: %w", err)
	}
	return artist, nil
}

// DeleteArtist удаляет артиста.
// Артист, на которого ссылаются товары, не удаляется (RESTRICT).
func (s *CatalogService) DeleteArtist(ctx context.Context, id uint) error {
	if err := s.artistRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrArtistNotFound):
			return ErrArtistNotFound
		case errors.Is(err, repository.ErrArtistInUse):
			return ErrArtistInUse
		}
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	return nil
}

// === PRODUCTS ===

// CreateProduct создает новый товар и перечитывает joined-строку.
// Последовательность insert + read-back не атомарна: конкурентное удаление
// между шагами даст ошибку чтения, это принятое поведение.
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.ProductWithDetails, error) {
	product := &entity.Product{
		ProductName:   strings.TrimSpace(req.ProductName),
		Variant:       trimOptional(req.Variant),
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		ArtistID:      req.ArtistID,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	created, err := s.productRepo.GetWithDetails(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_CREATED", &created.Product)
	return created, nil
}

// GetAllProducts получает все товары с joined-полями
func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.ProductWithDetails, error) {
	products, err := s.productRepo.GetAllWithDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// UpdateProduct применяет все поля запроса одним statement-ом,
// обновляет updated_at и перечитывает joined-строку
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req *entity.UpdateProductRequest) (*entity.ProductWithDetails, error) {
	product := &entity.Product{
		ID:            id,
		ProductName:   strings.TrimSpace(req.ProductName),
		Variant:       trimOptional(req.Variant),
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		ArtistID:      req.ArtistID,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	updated, err := s.productRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read back product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_UPDATED", &updated.Product)
	return updated, nil
}

// DeleteProduct удаляет товар
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publishProductEvent(ctx, "PRODUCT_DELETED", &entity.Product{ID: id})
	return nil
}

// publishProductEvent отправляет событие о товаре в Kafka.
// Ошибки отправки логируются и не прерывают основную операцию.
func (s *CatalogService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType:   eventType,
		ProductID:   product.ID,
		ProductName: product.ProductName,
		Price:       product.Price,
		CategoryID:  product.CategoryID,
		Timestamp:   time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal product event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatUint(uint64(product.ID), 10), data); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", eventType).
			Uint("product_id", product.ID).
			Msg("Failed to publish product event")
	}
}

func (s *CatalogService) invalidateCategories(ctx context.Context) {
	if err := s.cache.DeleteCategories(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate categories cache")
	}
}

func (s *CatalogService) invalidateBands(ctx context.Context) {
	if err := s.cache.DeleteBands(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate bands cache")
	}
}

// trimOptional обрезает пробелы у опциональной строки; пустая строка
// превращается в null
func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
