package models

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`
	DiscountPct    int            `gorm:"not null" json:"discount_pct"`
	MinOrderAmount Money          `gorm:"default:0" json:"min_order_amount"`
	Quantity       int            `gorm:"not null" json:"quantity"` // remaining uses
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Active         bool           `gorm:"default:true" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
