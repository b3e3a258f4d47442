package couponControllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

type CouponInput struct {
	Code           string       `json:"code" binding:"required"`
	DiscountPct    int          `json:"discount_pct" binding:"required"`
	MinOrderAmount models.Money `json:"min_order_amount"`
	Quantity       int          `json:"quantity" binding:"required"`
	StartDate      time.Time    `json:"start_date" binding:"required"`
	EndDate        time.Time    `json:"end_date" binding:"required"`
	Active         *bool        `json:"active"`
}

func (in CouponInput) validate() error {
	if in.DiscountPct < 1 || in.DiscountPct > 100 {
		return errors.New("discount_pct must be between 1 and 100")
	}
	if in.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	if !in.EndDate.After(in.StartDate) {
		return errors.New("end_date must be after start_date")
	}
	return nil
}

// GET /api/admin/coupons
func GetAllCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// POST /api/admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		coupon := models.Coupon{
			Code:           strings.ToUpper(strings.TrimSpace(input.Code)),
			DiscountPct:    input.DiscountPct,
			MinOrderAmount: input.MinOrderAmount,
			Quantity:       input.Quantity,
			StartDate:      input.StartDate,
			EndDate:        input.EndDate,
			Active:         true,
		}
		if input.Active != nil {
			coupon.Active = *input.Active
		}

		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Coupon code already exists"})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

// PUT /api/admin/coupons/:id
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon id"})
			return
		}

		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var coupon models.Coupon
		if err := db.First(&coupon, "id = ?", uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}

		coupon.Code = strings.ToUpper(strings.TrimSpace(input.Code))
		coupon.DiscountPct = input.DiscountPct
		coupon.MinOrderAmount = input.MinOrderAmount
		coupon.Quantity = input.Quantity
		coupon.StartDate = input.StartDate
		coupon.EndDate = input.EndDate
		if input.Active != nil {
			coupon.Active = *input.Active
		}

		if err := db.Save(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update coupon"})
			return
		}
		c.JSON(http.StatusOK, coupon)
	}
}

// DELETE /api/admin/coupons/:id
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon id"})
			return
		}

		result := db.Delete(&models.Coupon{}, "id = ?", uint(id))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
	}
}

// GET /api/coupons/:code
//
// Public check: tells the storefront whether a code is currently usable
// without consuming it.
func ValidateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

		var coupon models.Coupon
		if err := db.Where("code = ?", code).First(&coupon).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"valid": false, "error": "Mã giảm giá không tồn tại"})
			return
		}

		now := time.Now()
		switch {
		case !coupon.Active || now.Before(coupon.StartDate) || now.After(coupon.EndDate):
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Mã giảm giá không hợp lệ hoặc đã hết hạn"})
		case coupon.Quantity <= 0:
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Mã giảm giá đã hết lượt sử dụng"})
		default:
			c.JSON(http.StatusOK, gin.H{
				"valid":            true,
				"discount_pct":     coupon.DiscountPct,
				"min_order_amount": coupon.MinOrderAmount,
			})
		}
	}
}
