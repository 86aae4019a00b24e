package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"bentoshop/internal/app/inventory/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProductRepositoryTestSuite тестовый suite для репозитория товаров
type ProductRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  ProductRepository
	sqlDB *sql.DB
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}

func (s *ProductRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(s.T(), err)

	s.repo = NewProductRepository(s.db)
}

func (s *ProductRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func productDetailColumns() []string {
	return []string{
		"id", "product_name", "variant", "image_url", "price",
		"artist_id", "category_id", "stock_quantity", "created_at", "updated_at",
		"category_name", "artist_name", "band_name",
	}
}

// ===================== Create Tests =====================

func (s *ProductRepositoryTestSuite) TestCreate_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	s.mock.ExpectCommit()

	// Act
	product := &entity.Product{
		ProductName: "Proof Album",
		Price:       29.99,
		CategoryID:  1,
	}
	err := s.repo.Create(ctx, product)

	// Assert
	s.NoError(err)
	s.Equal(uint(42), product.ID)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestCreate_UnknownCategory() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WillReturnError(gorm.ErrForeignKeyViolated)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Create(ctx, &entity.Product{ProductName: "Proof Album", CategoryID: 99})

	// Assert
	s.ErrorIs(err, ErrCategoryNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetWithDetails Tests =====================

func (s *ProductRepositoryTestSuite) TestGetWithDetails_Success() {
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(productDetailColumns()).
		AddRow(42, "Proof Album", nil, nil, 29.99, 3, 1, 10, now, now, "Albums", "Jungkook", "BTS")

	s.mock.ExpectQuery(regexp.QuoteMeta(`JOIN categories c ON p.category_id = c.id`)).
		WithArgs(42).
		WillReturnRows(rows)

	// Act
	product, err := s.repo.GetWithDetails(ctx, 42)

	// Assert
	s.NoError(err)
	s.Equal(uint(42), product.ID)
	s.Equal("Proof Album", product.ProductName)
	s.Equal("Albums", product.CategoryName)
	s.Require().NotNil(product.ArtistName)
	s.Equal("Jungkook", *product.ArtistName)
	s.Require().NotNil(product.BandName)
	s.Equal("BTS", *product.BandName)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestGetWithDetails_NoArtist() {
	ctx := context.Background()
	now := time.Now()

	// Товар без артиста: artist_name и band_name приходят как NULL
	rows := sqlmock.NewRows(productDetailColumns()).
		AddRow(7, "Lightstick", nil, nil, 45.0, nil, 2, 5, now, now, "Merch", nil, nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`JOIN categories c ON p.category_id = c.id`)).
		WithArgs(7).
		WillReturnRows(rows)

	// Act
	product, err := s.repo.GetWithDetails(ctx, 7)

	// Assert
	s.NoError(err)
	s.Nil(product.ArtistID)
	s.Nil(product.ArtistName)
	s.Nil(product.BandName)

	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestGetWithDetails_NotFound() {
	ctx := context.Background()

	s.mock.ExpectQuery(regexp.QuoteMeta(`JOIN categories c ON p.category_id = c.id`)).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows(productDetailColumns()))

	// Act
	product, err := s.repo.GetWithDetails(ctx, 99)

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
	s.Nil(product)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== GetAllWithDetails Tests =====================

func (s *ProductRepositoryTestSuite) TestGetAllWithDetails_OrderedNewestFirst() {
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows(productDetailColumns()).
		AddRow(2, "Newer", nil, nil, 10.0, nil, 1, 1, now, now, "Albums", nil, nil).
		AddRow(1, "Older", nil, nil, 20.0, nil, 1, 1, now.Add(-time.Hour), now.Add(-time.Hour), "Albums", nil, nil)

	s.mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY p.created_at DESC`)).
		WillReturnRows(rows)

	// Act
	products, err := s.repo.GetAllWithDetails(ctx)

	// Assert
	s.NoError(err)
	s.Require().Len(products, 2)
	s.Equal("Newer", products[0].ProductName)
	s.Equal("Older", products[1].ProductName)

	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Update Tests =====================

func (s *ProductRepositoryTestSuite) TestUpdate_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Update(ctx, &entity.Product{
		ID:          42,
		ProductName: "Proof Album",
		Price:       24.99,
		CategoryID:  1,
	})

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Update(ctx, &entity.Product{
		ID:          99,
		ProductName: "Proof Album",
		CategoryID:  1,
	})

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestUpdate_UnknownCategory() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
		WillReturnError(gorm.ErrForeignKeyViolated)
	s.mock.ExpectRollback()

	// Act
	err := s.repo.Update(ctx, &entity.Product{
		ID:          42,
		ProductName: "Proof Album",
		CategoryID:  99,
	})

	// Assert
	s.ErrorIs(err, ErrCategoryNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}

// ===================== Delete Tests =====================

func (s *ProductRepositoryTestSuite) TestDelete_Success() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products" WHERE id = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Delete(ctx, 42)

	// Assert
	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *ProductRepositoryTestSuite) TestDelete_NotFound() {
	ctx := context.Background()

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "products" WHERE id = $1`)).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	// Act
	err := s.repo.Delete(ctx, 99)

	// Assert
	s.ErrorIs(err, ErrProductNotFound)
	s.NoError(s.mock.ExpectationsWereMet())
}
