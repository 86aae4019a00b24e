package entity

import (
	"time"
)

// Category представляет тип товара (альбомы, фотокарточки и т.д.)
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Band представляет группу, к которой привязаны артисты
type Band struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`

	// Артисты удаляются вместе с группой (ON DELETE CASCADE)
	Artists []Artist `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Artist представляет артиста; артист всегда принадлежит ровно одной группе
type Artist struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	BandID    uint      `json:"band_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// Product представляет товар в инвентаре.
// variant, image_url и artist_id опциональны; price и stock_quantity
// по умолчанию равны нулю.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ProductName   string    `json:"product_name" gorm:"not null"`
	Variant       *string   `json:"variant"`
	ImageURL      *string   `json:"image_url"`
	Price         float64   `json:"price" gorm:"default:0"`
	ArtistID      *uint     `json:"artist_id" gorm:"index"`
	CategoryID    uint      `json:"category_id" gorm:"not null;index"`
	StockQuantity int       `json:"stock_quantity" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Товар нельзя удалить вместе с категорией или артистом (ON DELETE RESTRICT)
	Artist   *Artist   `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
	Category *Category `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}

// ProductWithDetails содержит товар с отображаемыми именами связанных сущностей.
// artist_name и band_name равны null, если артист не задан.
type ProductWithDetails struct {
	Product      `gorm:"embedded"`
	CategoryName string  `json:"category_name"`
	ArtistName   *string `json:"artist_name"`
	BandName     *string `json:"band_name"`
}

// ArtistWithBand содержит артиста с именем его группы
type ArtistWithBand struct {
	Artist   `gorm:"embedded"`
	BandName string `json:"band_name"`
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType   string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Price       float64   `json:"price"`
	CategoryID  uint      `json:"category_id"`
	Timestamp   time.Time `json:"timestamp"`
}
