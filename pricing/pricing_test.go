package pricing

import (
	"testing"

	"github.com/solestride/storefront-api/models"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveDiscount(t *testing.T) {
	sale := 30
	assert.Equal(t, 30, EffectiveDiscount(10, &sale), "active sale overrides product discount")

	zero := 0
	assert.Equal(t, 0, EffectiveDiscount(10, &zero), "a zero-percent sale still wins")

	assert.Equal(t, 10, EffectiveDiscount(10, nil))
}

func TestComputeTotalsSelectedOnly(t *testing.T) {
	lines := []Line{
		{ProductID: 1, Price: 1000000, Discount: 10, Quantity: 1, Selected: true},
		{ProductID: 2, Price: 500000, Discount: 0, Quantity: 2, Selected: false},
		{ProductID: 3, Price: 200000, Discount: 0, Quantity: 0, Selected: true},
	}

	totals := ComputeTotals(lines, nil)
	assert.Equal(t, models.Money(900000), totals.Subtotal)
	assert.Equal(t, models.Money(0), totals.CouponAmount)
	assert.Equal(t, models.Money(900000), totals.Final)
}

func TestComputeTotalsWithCoupon(t *testing.T) {
	lines := []Line{
		{ProductID: 1, Price: 1000000, Discount: 10, Quantity: 1, Selected: true},
	}

	totals := ComputeTotals(lines, &CouponTerms{Pct: 5})
	assert.Equal(t, models.Money(900000), totals.Subtotal)
	assert.Equal(t, models.Money(45000), totals.CouponAmount)
	assert.Equal(t, models.Money(855000), totals.Final)
}

func TestComputeTotalsCouponBelowMinimum(t *testing.T) {
	lines := []Line{
		{ProductID: 1, Price: 100000, Discount: 0, Quantity: 1, Selected: true},
	}

	totals := ComputeTotals(lines, &CouponTerms{Pct: 10, MinOrder: 500000})
	assert.Equal(t, models.Money(100000), totals.Subtotal)
	assert.Equal(t, models.Money(0), totals.CouponAmount, "coupon must not apply below its minimum")
	assert.Equal(t, models.Money(100000), totals.Final)
}

func TestComputeTotalsCouponAtMinimum(t *testing.T) {
	lines := []Line{
		{ProductID: 1, Price: 500000, Discount: 0, Quantity: 1, Selected: true},
	}

	totals := ComputeTotals(lines, &CouponTerms{Pct: 10, MinOrder: 500000})
	assert.Equal(t, models.Money(50000), totals.CouponAmount, "threshold is inclusive")
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil, &CouponTerms{Pct: 50})
	assert.Equal(t, models.Money(0), totals.Subtotal)
	assert.Equal(t, models.Money(0), totals.Final)
}

func TestComputeTotalsFinalNeverNegative(t *testing.T) {
	lines := []Line{
		{ProductID: 1, Price: 100, Discount: 0, Quantity: 1, Selected: true},
	}

	totals := ComputeTotals(lines, &CouponTerms{Pct: 100})
	assert.Equal(t, models.Money(0), totals.Final)
	assert.GreaterOrEqual(t, totals.Final, models.Money(0))
}

func TestComputeTotalsMultipleLinesAndQuantities(t *testing.T) {
	lines := []Line{
		{ProductID: 1, Price: 1500000, Discount: 20, Quantity: 2, Selected: true}, // 2 * 1200000
		{ProductID: 2, Price: 800000, Discount: 0, Quantity: 1, Selected: true},   // 800000
	}

	totals := ComputeTotals(lines, &CouponTerms{Pct: 10})
	assert.Equal(t, models.Money(3200000), totals.Subtotal)
	assert.Equal(t, models.Money(320000), totals.CouponAmount)
	assert.Equal(t, models.Money(2880000), totals.Final)
}
