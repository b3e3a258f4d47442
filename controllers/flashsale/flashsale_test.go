package flashsaleControllers

import (
	"testing"
	"time"

	"github.com/solestride/storefront-api/models"
	"github.com/stretchr/testify/assert"
)

func TestWindowsOverlap(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}

	assert.True(t, windowsOverlap(day(1), day(10), day(5), day(15)))
	assert.True(t, windowsOverlap(day(5), day(15), day(1), day(10)))
	assert.True(t, windowsOverlap(day(1), day(31), day(10), day(11)), "containment counts")
	assert.True(t, windowsOverlap(day(1), day(10), day(10), day(20)), "touching endpoints count")

	assert.False(t, windowsOverlap(day(1), day(9), day(10), day(20)))
	assert.False(t, windowsOverlap(day(21), day(25), day(10), day(20)))
}

func TestFlashSaleActiveAt(t *testing.T) {
	sale := models.FlashSale{
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, sale.ActiveAt(sale.StartDate))
	assert.True(t, sale.ActiveAt(sale.EndDate))
	assert.True(t, sale.ActiveAt(time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)))

	assert.False(t, sale.ActiveAt(sale.StartDate.Add(-time.Second)))
	assert.False(t, sale.ActiveAt(sale.EndDate.Add(time.Second)))
}

func TestFlashSaleInputValidate(t *testing.T) {
	base := FlashSaleInput{
		ProductID:   1,
		DiscountPct: 30,
		StartDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, base.validate())

	bad := base
	bad.DiscountPct = 0
	assert.Error(t, bad.validate())

	bad = base
	bad.DiscountPct = 101
	assert.Error(t, bad.validate())

	bad = base
	bad.EndDate = bad.StartDate
	assert.Error(t, bad.validate())
}
