package models

import "time"

type Cart struct {
	CartID uint       `gorm:"primaryKey" json:"cart_id"`
	UserID string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`

	ShippingName    string `json:"shipping_name"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingAddress string `json:"shipping_address"`

	// Applied coupon snapshot. DiscountAmount is recomputed together with
	// the totals whenever the cart mutates.
	CouponCode           string `json:"coupon_code"`
	CouponDiscountPct    int    `json:"coupon_discount_pct"`
	CouponDiscountAmount Money  `json:"coupon_discount_amount"`

	// Derived over selected items at last recomputation.
	TotalPrice Money `json:"total_price"`
	FinalPrice Money `json:"final_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CartID     uint      `gorm:"index" json:"cart_id"`
	ProductID  uint      `gorm:"index" json:"product_id"`
	ColorID    uint      `json:"color_id"`
	SizeID     uint      `json:"size_id"`
	Quantity   int       `json:"quantity"`
	IsSelected bool      `gorm:"default:true" json:"is_selected"`
	AddedAt    time.Time `json:"added_at"`
}
