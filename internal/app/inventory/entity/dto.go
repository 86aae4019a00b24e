package entity

import "time"

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateBandRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateArtistRequest struct {
	Name   string `json:"name" validate:"required"`
	BandID uint   `json:"band_id" validate:"required"`
}

type UpdateArtistRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateProductRequest - тело POST /products.
// Отсутствующие price и stock_quantity трактуются как ноль,
// variant/image_url/artist_id - как null. Это сознательная совместимость
// с существующими клиентами, а не упущение.
type CreateProductRequest struct {
	ProductName   string  `json:"product_name" validate:"required"`
	Variant       *string `json:"variant"`
	ImageURL      *string `json:"image_url"`
	Price         float64 `json:"price"`
	ArtistID      *uint   `json:"artist_id"`
	CategoryID    uint    `json:"category_id" validate:"required"`
	StockQuantity int     `json:"stock_quantity"`
}

// UpdateProductRequest - тело PUT /products/{id}.
// Обновление полное: применяются все поля запроса одним statement.
type UpdateProductRequest struct {
	ProductName   string  `json:"product_name" validate:"required"`
	Variant       *string `json:"variant"`
	ImageURL      *string `json:"image_url"`
	Price         float64 `json:"price"`
	ArtistID      *uint   `json:"artist_id"`
	CategoryID    uint    `json:"category_id" validate:"required"`
	StockQuantity int     `json:"stock_quantity"`
}

// ErrorResponse - единый формат ошибки API
type ErrorResponse struct {
	StatusCode    int        `json:"statusCode"`
	StatusMessage string     `json:"statusMessage"`
	Data          *ErrorData `json:"data,omitempty"`
}

// ErrorData содержит исходное сообщение хранилища для диагностики 500-х
type ErrorData struct {
	OriginalError string `json:"originalError,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UploadResponse - ответ POST /upload
type UploadResponse struct {
	URL string `json:"url"`
}

// ImageInfo - элемент списка GET /images
type ImageInfo struct {
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type ImageListResponse struct {
	Images []ImageInfo `json:"images"`
	Total  int         `json:"total"`
}
