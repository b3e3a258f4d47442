package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Brand       string `gorm:"index" json:"brand"`
	Description string `json:"description"`
	Price       Money  `gorm:"not null" json:"price"`
	Discount    int    `gorm:"default:0" json:"discount"` // percent off, 0-100
	Image       string `json:"image"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant is one purchasable color/size combination with its own stock.
type ProductVariant struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;uniqueIndex:idx_variant_tuple" json:"product_id"`
	ColorID   uint   `gorm:"uniqueIndex:idx_variant_tuple" json:"color_id"`
	ColorName string `json:"color_name"`
	SizeID    uint   `gorm:"uniqueIndex:idx_variant_tuple" json:"size_id"`
	SizeValue string `json:"size_value"`
	Stock     int    `gorm:"default:0" json:"stock"`
}
