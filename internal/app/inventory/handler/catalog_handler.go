package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bentoshop/internal/app/inventory/entity"
	"bentoshop/internal/app/inventory/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CatalogHandler обрабатывает HTTP запросы каталога с использованием Gin
type CatalogHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === CATEGORIES ===

// GetCategories обрабатывает GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateCategory обрабатывает POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req entity.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Category name is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "Category name is required")
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			respondError(c, http.StatusConflict, "Category already exists")
			return
		}
		respondInternal(c, "Failed to create category", err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// DeleteCategory обрабатывает DELETE /categories/{id}
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		if errors.Is(err, service.ErrCategoryInUse) {
			respondError(c, http.StatusConflict, "Cannot delete category: it is being used by products")
			return
		}
		respondInternal(c, "Failed to delete category", err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

// === BANDS ===

// GetBands обрабатывает GET /bands
func (h *CatalogHandler) GetBands(c *gin.Context) {
	bands, err := h.catalogService.GetAllBands(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch bands", err)
		return
	}
	c.JSON(http.StatusOK, bands)
}

// CreateBand обрабатывает POST /bands
func (h *CatalogHandler) CreateBand(c *gin.Context) {
	var req entity.CreateBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Band name is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "Band name is required")
		return
	}

	band, err := h.catalogService.CreateBand(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBandExists) {
			respondError(c, http.StatusConflict, "Band already exists")
			return
		}
		respondInternal(c, "Failed to create band", err)
		return
	}

	c.JSON(http.StatusCreated, band)
}

// DeleteBand обрабатывает DELETE /bands/{id}
// Артисты группы удаляются каскадом
func (h *CatalogHandler) DeleteBand(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteBand(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrBandNotFound) {
			respondError(c, http.StatusNotFound, "Band not found")
			return
		}
		respondInternal(c, "Failed to delete band", err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

// GetBandArtists обрабатывает GET /bands/{bandId}/artists
func (h *CatalogHandler) GetBandArtists(c *gin.Context) {
	bandID, ok := parseID(c, "bandId")
	if !ok {
		return
	}

	artists, err := h.catalogService.GetBandArtists(c.Request.Context(), bandID)
	if err != nil {
		respondInternal(c, "Failed to fetch artists", err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

// === ARTISTS ===

// GetArtists обрабатывает GET /artists
// Возвращает артистов с названием группы, сортировка по группе и имени
func (h *CatalogHandler) GetArtists(c *gin.Context) {
	artists, err := h.catalogService.GetAllArtists(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch artists", err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

// CreateArtist обрабатывает POST /artists
func (h *CatalogHandler) CreateArtist(c *gin.Context) {
	var req entity.CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Artist name and band_id are required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "Artist name and band_id are required")
		return
	}

	artist, err := h.catalogService.CreateArtist(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBandNotFound) {
			respondError(c, http.StatusNotFound, "Band not found")
			return
		}
		respondInternal(c, "Failed to create artist", err)
		return
	}

	c.JSON(http.StatusCreated, artist)
}

// UpdateArtist обрабатывает PUT /artists/{id}
func (h *CatalogHandler) UpdateArtist(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Artist name is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "Artist name is required")
		return
	}

	artist, err := h.catalogService.UpdateArtist(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			respondError(c, http.StatusNotFound, "Artist not found")
			return
		}
		respondInternal(c, "Failed to update artist", err)
		return
	}

	c.JSON(http.StatusOK, artist)
}

// DeleteArtist обрабатывает DELETE /artists/{id}
func (h *CatalogHandler) DeleteArtist(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteArtist(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrArtistNotFound) {
			respondError(c, http.StatusNotFound, "Artist not found")
			return
		}
		if errors.Is(err, service.ErrArtistInUse) {
			respondError(c, http.StatusConflict, "Cannot delete artist: it is being used by products")
			return
		}
		respondInternal(c, "Failed to delete artist", err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

// === PRODUCTS ===

// GetProducts обрабатывает GET /products
// Возвращает товары с категорией, артистом и группой, новые первыми
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to fetch products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct обрабатывает POST /products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Product name and category_id are required")
		return
	}
	if strings.TrimSpace(req.ProductName) == "" {
		respondError(c, http.StatusBadRequest, "Product name and category_id are required")
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		if errors.Is(err, service.ErrArtistNotFound) {
			respondError(c, http.StatusNotFound, "Artist not found")
			return
		}
		respondInternal(c, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct обрабатывает PUT /products/{id}
// Полное обновление: применяются все поля запроса
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondError(c, http.StatusBadRequest, "Product name and category_id are required")
		return
	}
	if strings.TrimSpace(req.ProductName) == "" {
		respondError(c, http.StatusBadRequest, "Product name and category_id are required")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "Category not found")
			return
		}
		if errors.Is(err, service.ErrArtistNotFound) {
			respondError(c, http.StatusNotFound, "Artist not found")
			return
		}
		respondInternal(c, "Failed to update product", err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /products/{id}
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(c, "Failed to delete product", err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Success: true})
}

// parseID извлекает числовой ID из параметра пути
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// respondError отправляет ошибку в едином формате API
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		StatusCode:    status,
		StatusMessage: message,
	})
}

// respondInternal отправляет 500 с исходным сообщением для диагностики
func respondInternal(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, entity.ErrorResponse{
		StatusCode:    http.StatusInternalServerError,
		StatusMessage: message,
		Data:          &entity.ErrorData{OriginalError: err.Error()},
	})
}
