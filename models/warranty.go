package models

import "time"

type WarrantyStatus string

const (
	WarrantyStatusActive          WarrantyStatus = "active"
	WarrantyStatusReturnRequested WarrantyStatus = "return_requested"
	WarrantyStatusReturned        WarrantyStatus = "returned"
	WarrantyStatusExpired         WarrantyStatus = "expired"
)

// ReturnWindow is how long after delivery an item may be sent back.
const ReturnWindow = 7 * 24 * time.Hour

// Warranty is spawned per order line item when the order is delivered.
type Warranty struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        string         `gorm:"index;not null" json:"user_id"`
	PaymentID     uint           `gorm:"index" json:"payment_id"`
	PaymentItemID uint           `gorm:"index" json:"payment_item_id"`
	ProductID     uint           `json:"product_id"`
	ProductName   string         `json:"product_name"`
	StartDate     time.Time      `json:"start_date"`
	ReturnBy      time.Time      `json:"return_by"`
	Status        WarrantyStatus `gorm:"type:VARCHAR(20);default:'active'" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
