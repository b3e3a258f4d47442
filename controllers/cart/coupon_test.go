package cartControllers

import (
	"testing"
	"time"

	"github.com/solestride/storefront-api/models"
	"github.com/stretchr/testify/assert"
)

func TestCouponUsable(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	coupon := models.Coupon{
		Code:           "SALE10",
		DiscountPct:    10,
		MinOrderAmount: 500000,
		Active:         true,
		StartDate:      now.Add(-24 * time.Hour),
		EndDate:        now.Add(24 * time.Hour),
	}

	assert.NoError(t, couponUsable(coupon, 500000, now))
	assert.NoError(t, couponUsable(coupon, 900000, now))

	assert.ErrorIs(t, couponUsable(coupon, 499999, now), errCouponMinOrder)

	inactive := coupon
	inactive.Active = false
	assert.ErrorIs(t, couponUsable(inactive, 900000, now), errCouponInvalid)

	assert.ErrorIs(t, couponUsable(coupon, 900000, now.Add(48*time.Hour)), errCouponInvalid)
	assert.ErrorIs(t, couponUsable(coupon, 900000, now.Add(-48*time.Hour)), errCouponInvalid)
}

func TestCouponUsableWindowBoundaries(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	coupon := models.Coupon{Active: true, StartDate: start, EndDate: end}

	assert.NoError(t, couponUsable(coupon, 0, start), "start instant is valid")
	assert.NoError(t, couponUsable(coupon, 0, end), "end instant is valid")
}
