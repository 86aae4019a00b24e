package handler

import (
	"errors"
	"io"
	"net/http"

	"bentoshop/internal/app/inventory/entity"
	"bentoshop/internal/app/inventory/service"
	"bentoshop/internal/app/inventory/storage"

	"github.com/gin-gonic/gin"
)

// placeholderSVG отдается вместо отсутствующего изображения,
// чтобы карточки товаров не ломались битыми ссылками
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="400" viewBox="0 0 400 400">
  <rect width="400" height="400" fill="#f3f4f6"/>
  <text x="200" y="200" font-size="48" text-anchor="middle" dominant-baseline="middle">&#128230;</text>
</svg>`

// ImageHandler обрабатывает загрузку и выдачу изображений товаров
type ImageHandler struct {
	imageService *service.ImageService
}

// NewImageHandler создает новый обработчик изображений
func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload обрабатывает POST /upload
// Принимает multipart файл в поле "file" и опциональный флаг "watermark"
func (h *ImageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondInternal(c, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondInternal(c, "Failed to read uploaded file", err)
		return
	}

	watermarkFlag := c.PostForm("watermark")
	applyWatermark := watermarkFlag == "true" || watermarkFlag == "1"

	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.imageService.Upload(c.Request.Context(), fileHeader.Filename, contentType, data, applyWatermark)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedFileType) {
			respondError(c, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, WebP, and GIF are allowed")
			return
		}
		respondInternal(c, "Failed to store image", err)
		return
	}

	c.JSON(http.StatusOK, entity.UploadResponse{URL: url})
}

// GetImage обрабатывает GET /images/{filename}
// Отсутствующий файл подменяется на SVG placeholder со статусом 200
func (h *ImageHandler) GetImage(c *gin.Context) {
	key := c.Param("filename")

	data, meta, err := h.imageService.Get(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.Header("Cache-Control", "public, max-age=3600")
			c.Data(http.StatusOK, "image/svg+xml", []byte(placeholderSVG))
			return
		}
		respondInternal(c, "Failed to fetch image", err)
		return
	}

	contentType := meta.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Ключи уникальны и не переиспользуются, кешировать можно навсегда
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Data(http.StatusOK, contentType, data)
}

// DeleteImage обрабатывает DELETE /images/{filename}
// Удаление идемпотентно: отсутствующий ключ тоже успех
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	key := c.Param("filename")

	if err := h.imageService.Delete(c.Request.Context(), key); err != nil {
		respondInternal(c, "Failed to delete image", err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Success: true,
		Message: "Image deleted successfully",
	})
}

// ListImages обрабатывает GET /images
func (h *ImageHandler) ListImages(c *gin.Context) {
	images, err := h.imageService.List(c.Request.Context())
	if err != nil {
		respondInternal(c, "Failed to list images", err)
		return
	}

	c.JSON(http.StatusOK, entity.ImageListResponse{
		Images: images,
		Total:  len(images),
	})
}
