package models

import "time"

// FlashSale is a time-boxed discount override for one product. While active
// it takes precedence over the product's own discount.
type FlashSale struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProductID   uint      `gorm:"index;not null" json:"product_id"`
	DiscountPct int       `gorm:"not null" json:"discount_pct"`
	StartDate   time.Time `gorm:"index;not null" json:"start_date"`
	EndDate     time.Time `gorm:"index;not null" json:"end_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func (f FlashSale) ActiveAt(now time.Time) bool {
	return !now.Before(f.StartDate) && !now.After(f.EndDate)
}
