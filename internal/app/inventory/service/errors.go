package service

import "errors"

// Ошибки бизнес-логики для обработки в handlers
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category name already exists")
	ErrCategoryInUse    = errors.New("category is being used by products")

	ErrBandNotFound = errors.New("band not found")
	ErrBandExists   = errors.New("band name already exists")

	ErrArtistNotFound = errors.New("artist not found")
	ErrArtistInUse    = errors.New("artist is being used by products")

	ErrProductNotFound = errors.New("product not found")

	ErrUnsupportedFileType = errors.New("unsupported file type")
)
