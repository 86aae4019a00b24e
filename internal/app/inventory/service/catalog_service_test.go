package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bentoshop/internal/app/inventory/entity"
	"bentoshop/internal/app/inventory/repository"
	"bentoshop/internal/app/inventory/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Хелперы для создания тестового окружения

type serviceMocks struct {
	categoryRepo *mocks.MockCategoryRepository
	bandRepo     *mocks.MockBandRepository
	artistRepo   *mocks.MockArtistRepository
	productRepo  *mocks.MockProductRepository
	cache        *mocks.MockLookupCache
	publisher    *mocks.MockMessagePublisher
}

func setupService() (*CatalogService, *serviceMocks) {
	m := &serviceMocks{
		categoryRepo: new(mocks.MockCategoryRepository),
		bandRepo:     new(mocks.MockBandRepository),
		artistRepo:   new(mocks.MockArtistRepository),
		productRepo:  new(mocks.MockProductRepository),
		cache:        new(mocks.MockLookupCache),
		publisher:    new(mocks.MockMessagePublisher),
	}
	svc := NewCatalogService(
		m.categoryRepo, m.bandRepo, m.artistRepo, m.productRepo,
		m.cache, m.publisher,
	)
	return svc, m
}

func newDetailedProduct(id uint, name string) *entity.ProductWithDetails {
	return &entity.ProductWithDetails{
		Product: entity.Product{
			ID:          id,
			ProductName: name,
			Price:       29.99,
			CategoryID:  1,
			CreatedAt:   time.Now(),
		},
		CategoryName: "Albums",
	}
}

// ==================== Category Tests ====================

func TestCatalogService_CreateCategory_TrimsName(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.categoryRepo.On("Create", ctx, mock.AnythingOfType("*entity.Category")).Return(nil)
	m.cache.On("DeleteCategories", ctx).Return(nil)

	// Act
	category, err := svc.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "  Albums  "})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Albums", category.Name)

	m.categoryRepo.AssertExpectations(t)
	m.cache.AssertExpectations(t)
}

func TestCatalogService_CreateCategory_Duplicate(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.categoryRepo.On("Create", ctx, mock.Anything).Return(repository.ErrCategoryExists)

	// Act
	category, err := svc.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Albums"})

	// Assert
	assert.ErrorIs(t, err, ErrCategoryExists)
	assert.Nil(t, category)
}

func TestCatalogService_GetAllCategories_CacheHit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	cached := []entity.Category{{ID: 1, Name: "Albums"}}
	m.cache.On("GetCategories", ctx).Return(cached, nil)

	// Act
	categories, err := svc.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, cached, categories)

	// До репозитория дело не дошло
	m.categoryRepo.AssertNotCalled(t, "GetAll", mock.Anything)
}

func TestCatalogService_GetAllCategories_CacheMissFallsBackToDB(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	fromDB := []entity.Category{{ID: 1, Name: "Albums"}, {ID: 2, Name: "Photocards"}}
	m.cache.On("GetCategories", ctx).Return(nil, errors.New("redis down"))
	m.categoryRepo.On("GetAll", ctx).Return(fromDB, nil)
	m.cache.On("SetCategories", ctx, fromDB, time.Hour).Return(nil)

	// Act
	categories, err := svc.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fromDB, categories)
	m.cache.AssertExpectations(t)
}

func TestCatalogService_GetAllCategories_CacheWriteFailureIsNotFatal(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	fromDB := []entity.Category{{ID: 1, Name: "Albums"}}
	m.cache.On("GetCategories", ctx).Return(nil, errors.New("redis down"))
	m.categoryRepo.On("GetAll", ctx).Return(fromDB, nil)
	m.cache.On("SetCategories", ctx, fromDB, time.Hour).Return(errors.New("redis still down"))

	// Act
	categories, err := svc.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fromDB, categories)
}

func TestCatalogService_DeleteCategory_InUse(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.categoryRepo.On("Delete", ctx, uint(1)).Return(repository.ErrCategoryInUse)

	// Act
	err := svc.DeleteCategory(ctx, 1)

	// Assert
	assert.ErrorIs(t, err, ErrCategoryInUse)
	m.cache.AssertNotCalled(t, "DeleteCategories", mock.Anything)
}

// ==================== Band Tests ====================

func TestCatalogService_CreateBand_InvalidatesCache(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.bandRepo.On("Create", ctx, mock.AnythingOfType("*entity.Band")).Return(nil)
	m.cache.On("DeleteBands", ctx).Return(nil)

	// Act
	band, err := svc.CreateBand(ctx, &entity.CreateBandRequest{Name: "BTS"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "BTS", band.Name)
	m.cache.AssertExpectations(t)
}

func TestCatalogService_DeleteBand_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.bandRepo.On("Delete", ctx, uint(99)).Return(repository.ErrBandNotFound)

	// Act
	err := svc.DeleteBand(ctx, 99)

	// Assert
	assert.ErrorIs(t, err, ErrBandNotFound)
}

// ==================== Artist Tests ====================

func TestCatalogService_CreateArtist_ReadsBackWithBand(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.artistRepo.On("Create", ctx, mock.AnythingOfType("*entity.Artist")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Artist).ID = 7
		}).Return(nil)
	m.artistRepo.On("GetWithBand", ctx, uint(7)).Return(&entity.ArtistWithBand{
		Artist:   entity.Artist{ID: 7, Name: "Jimin", BandID: 1},
		BandName: "BTS",
	}, nil)

	// Act
	artist, err := svc.CreateArtist(ctx, &entity.CreateArtistRequest{Name: "Jimin", BandID: 1})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(7), artist.ID)
	assert.Equal(t, "BTS", artist.BandName)
}

func TestCatalogService_CreateArtist_UnknownBand(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.artistRepo.On("Create", ctx, mock.Anything).Return(repository.ErrBandNotFound)

	// Act
	artist, err := svc.CreateArtist(ctx, &entity.CreateArtistRequest{Name: "Jimin", BandID: 99})

	// Assert
	assert.ErrorIs(t, err, ErrBandNotFound)
	assert.Nil(t, artist)
}

func TestCatalogService_DeleteArtist_InUse(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.artistRepo.On("Delete", ctx, uint(1)).Return(repository.ErrArtistInUse)

	// Act
	err := svc.DeleteArtist(ctx, 1)

	// Assert
	assert.ErrorIs(t, err, ErrArtistInUse)
}

// ==================== Product Tests ====================

func TestCatalogService_CreateProduct_PublishesEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Product).ID = 42
		}).Return(nil)
	m.productRepo.On("GetWithDetails", ctx, uint(42)).Return(newDetailedProduct(42, "Proof Album"), nil)

	var published []byte
	m.publisher.On("PublishMessage", ctx, "42", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).Return(nil)

	// Act
	product, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		ProductName: "Proof Album",
		Price:       29.99,
		CategoryID:  1,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(42), product.ID)

	var event entity.ProductEvent
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, "PRODUCT_CREATED", event.EventType)
	assert.Equal(t, uint(42), event.ProductID)
	assert.Equal(t, 29.99, event.Price)
}

func TestCatalogService_CreateProduct_KafkaFailureDoesNotFailRequest(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.productRepo.On("Create", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Product).ID = 42
		}).Return(nil)
	m.productRepo.On("GetWithDetails", ctx, uint(42)).Return(newDetailedProduct(42, "Proof Album"), nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("broker unreachable"))

	// Act
	product, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		ProductName: "Proof Album",
		CategoryID:  1,
	})

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, product)
}

func TestCatalogService_CreateProduct_BlankVariantBecomesNull(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	blank := "   "
	var created *entity.Product
	m.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Product)
			created.ID = 1
		}).Return(nil)
	m.productRepo.On("GetWithDetails", ctx, uint(1)).Return(newDetailedProduct(1, "Proof Album"), nil)
	m.publisher.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	// Act
	_, err := svc.CreateProduct(ctx, &entity.CreateProductRequest{
		ProductName: "Proof Album",
		Variant:     &blank,
		CategoryID:  1,
	})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Nil(t, created.Variant)
}

func TestCatalogService_UpdateProduct_PublishesEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.productRepo.On("Update", ctx, mock.AnythingOfType("*entity.Product")).Return(nil)
	m.productRepo.On("GetWithDetails", ctx, uint(42)).Return(newDetailedProduct(42, "Proof Album"), nil)

	var published []byte
	m.publisher.On("PublishMessage", ctx, "42", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).Return(nil)

	// Act
	_, err := svc.UpdateProduct(ctx, 42, &entity.UpdateProductRequest{
		ProductName: "Proof Album",
		Price:       24.99,
		CategoryID:  1,
	})

	// Assert
	require.NoError(t, err)

	var event entity.ProductEvent
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, "PRODUCT_UPDATED", event.EventType)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.productRepo.On("Update", ctx, mock.Anything).Return(repository.ErrProductNotFound)

	// Act
	product, err := svc.UpdateProduct(ctx, 99, &entity.UpdateProductRequest{
		ProductName: "Proof Album",
		CategoryID:  1,
	})

	// Assert
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, product)
	m.publisher.AssertNotCalled(t, "PublishMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalogService_DeleteProduct_PublishesEvent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	svc, m := setupService()

	m.productRepo.On("Delete", ctx, uint(42)).Return(nil)

	var published []byte
	m.publisher.On("PublishMessage", ctx, "42", mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).([]byte)
		}).Return(nil)

	// Act
	err := svc.DeleteProduct(ctx, 42)

	// Assert
	require.NoError(t, err)

	var event entity.ProductEvent
	require.NoError(t, json.Unmarshal(published, &event))
	assert.Equal(t, "PRODUCT_DELETED", event.EventType)
}
