package models

import "time"

type PaymentStatus string
type PaymentMethod string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusShipped   PaymentStatus = "shipped"
	PaymentStatusDelivered PaymentStatus = "delivered"
	PaymentStatusCancelled PaymentStatus = "cancelled"

	PaymentMethodCOD     PaymentMethod = "cod"
	PaymentMethodMoMo    PaymentMethod = "momo"
	PaymentMethodVNPay   PaymentMethod = "vnpay"
	PaymentMethodZaloPay PaymentMethod = "zalopay"
)

// Payment is the durable record of a checkout attempt. Line items freeze the
// discount and unit price resolved at creation time, so later catalog or
// flash-sale changes never alter historical orders.
type Payment struct {
	ID      uint          `gorm:"primaryKey" json:"id"`
	UserID  string        `gorm:"index;not null" json:"user_id"`
	OrderID string        `gorm:"uniqueIndex" json:"order_id"` // gateway correlation key
	Items   []PaymentItem `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"items"`

	TotalPrice Money         `json:"total_price"`
	FinalPrice Money         `json:"final_price"`
	Status     PaymentStatus `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`
	Method     PaymentMethod `gorm:"type:VARCHAR(20);index" json:"payment_method"`

	CouponCode           string `json:"coupon_code"`
	CouponDiscountPct    int    `json:"coupon_discount_pct"`
	CouponDiscountAmount Money  `json:"coupon_discount_amount"`

	ShippingName    string `json:"shipping_name"`
	ShippingPhone   string `json:"shipping_phone"`
	ShippingAddress string `json:"shipping_address"`

	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

type PaymentItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	PaymentID uint `gorm:"index" json:"payment_id"`

	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductImage string `json:"product_image"`
	ColorID      uint   `json:"color_id"`
	ColorName    string `json:"color_name"`
	SizeID       uint   `json:"size_id"`
	SizeValue    string `json:"size_value"`

	Price              Money `json:"price"`
	Discount           int   `json:"discount"` // frozen at checkout
	PriceAfterDiscount Money `json:"price_after_discount"`
	Quantity           int   `json:"quantity"`
}
