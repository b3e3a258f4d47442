package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"github.com/solestride/storefront-api/pricing"
	"gorm.io/gorm"
)

var (
	errCouponInvalid   = errors.New("Mã giảm giá không hợp lệ hoặc đã hết hạn")
	errCouponExhausted = errors.New("Mã giảm giá đã hết lượt sử dụng")
	errCouponMinOrder  = errors.New("Đơn hàng chưa đạt giá trị tối thiểu của mã giảm giá")
)

type ApplyCouponInput struct {
	Code string `json:"code" binding:"required"`
}

// couponUsable checks everything about a coupon except its remaining
// quantity, which is consumed atomically at apply time.
func couponUsable(coupon models.Coupon, subtotal models.Money, now time.Time) error {
	if !coupon.Active || now.Before(coupon.StartDate) || now.After(coupon.EndDate) {
		return errCouponInvalid
	}
	if subtotal < coupon.MinOrderAmount {
		return errCouponMinOrder
	}
	return nil
}

// POST /api/cart/coupon
//
// Applying a different coupon releases the previous one: its quantity is
// restored and the new coupon's is consumed, so at most one coupon's use
// count is held per cart.
func ApplyCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ApplyCouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}
		if cart.CouponCode == input.Code {
			c.JSON(http.StatusOK, gin.H{"message": "Coupon already applied", "cart": cart})
			return
		}

		now := time.Now()
		err := db.Transaction(func(tx *gorm.DB) error {
			var coupon models.Coupon
			if err := tx.Where("code = ?", input.Code).First(&coupon).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errCouponInvalid
				}
				return err
			}

			// Subtotal over currently selected items decides the minimum-order check.
			if err := pricing.RecomputeCart(tx, cart, now); err != nil {
				return err
			}
			if err := couponUsable(coupon, cart.TotalPrice, now); err != nil {
				return err
			}

			result := tx.Model(&models.Coupon{}).
				Where("id = ? AND quantity > 0", coupon.ID).
				Update("quantity", gorm.Expr("quantity - 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return errCouponExhausted
			}

			if cart.CouponCode != "" {
				if err := restoreCouponTx(tx, cart.CouponCode); err != nil {
					return err
				}
			}

			cart.CouponCode = coupon.Code
			cart.CouponDiscountPct = coupon.DiscountPct
			if err := tx.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Updates(map[string]interface{}{
				"coupon_code":         coupon.Code,
				"coupon_discount_pct": coupon.DiscountPct,
			}).Error; err != nil {
				return err
			}
			return pricing.RecomputeCart(tx, cart, now)
		})
		if err != nil {
			status := http.StatusInternalServerError
			msg := "Failed to apply coupon"
			if errors.Is(err, errCouponInvalid) || errors.Is(err, errCouponExhausted) || errors.Is(err, errCouponMinOrder) {
				status, msg = http.StatusBadRequest, err.Error()
			}
			c.JSON(status, gin.H{"error": msg})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// DELETE /api/cart/coupon
func RemoveCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}
		if cart.CouponCode == "" {
			c.JSON(http.StatusOK, gin.H{"message": "No coupon applied"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := restoreCouponTx(tx, cart.CouponCode); err != nil {
				return err
			}
			cart.CouponCode = ""
			cart.CouponDiscountPct = 0
			if err := tx.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Updates(map[string]interface{}{
				"coupon_code":         "",
				"coupon_discount_pct": 0,
			}).Error; err != nil {
				return err
			}
			return pricing.RecomputeCart(tx, cart, time.Now())
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove coupon"})
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

func restoreCouponTx(tx *gorm.DB, code string) error {
	return tx.Model(&models.Coupon{}).Where("code = ?", code).
		Update("quantity", gorm.Expr("quantity + 1")).Error
}
