package pricing

import (
	"time"

	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

// Line is one cart line prepared for total computation. Discount is the
// effective percentage already resolved against any active flash sale.
type Line struct {
	ProductID uint
	Price     models.Money
	Discount  int
	Quantity  int
	Selected  bool
}

// CouponTerms are the parts of a coupon that affect totals.
type CouponTerms struct {
	Pct      int
	MinOrder models.Money
}

type Totals struct {
	Subtotal     models.Money
	CouponAmount models.Money
	Final        models.Money
}

// EffectiveDiscount resolves the discount for a product: an active flash
// sale wins over the product's standing discount.
func EffectiveDiscount(baseDiscount int, salePct *int) int {
	if salePct != nil {
		return *salePct
	}
	return baseDiscount
}

// ComputeTotals sums selected lines at their discounted prices and applies
// the coupon percentage when the subtotal clears the coupon's threshold.
// The final price never goes below zero.
func ComputeTotals(lines []Line, coupon *CouponTerms) Totals {
	var subtotal models.Money
	for _, l := range lines {
		if !l.Selected || l.Quantity <= 0 {
			continue
		}
		subtotal += models.ApplyPercent(l.Price, l.Discount) * models.Money(l.Quantity)
	}

	var couponAmount models.Money
	if coupon != nil && subtotal >= coupon.MinOrder {
		couponAmount = models.PercentOf(subtotal, coupon.Pct)
	}

	final := subtotal - couponAmount
	if final < 0 {
		final = 0
	}
	return Totals{Subtotal: subtotal, CouponAmount: couponAmount, Final: final}
}

// ActiveFlashSales returns the discount of the sale covering each of the
// given products at the given instant. ActiveAt decides liveness.
func ActiveFlashSales(db *gorm.DB, productIDs []uint, now time.Time) (map[uint]int, error) {
	out := make(map[uint]int)
	if len(productIDs) == 0 {
		return out, nil
	}
	var sales []models.FlashSale
	if err := db.Where("product_id IN ?", productIDs).Find(&sales).Error; err != nil {
		return nil, err
	}
	for _, s := range sales {
		if s.ActiveAt(now) {
			out[s.ProductID] = s.DiscountPct
		}
	}
	return out, nil
}

// cartLines loads products and active sales for the cart's items and builds
// pricing lines. Items whose product no longer exists are skipped.
func cartLines(db *gorm.DB, cart *models.Cart, now time.Time) ([]Line, error) {
	ids := make([]uint, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}

	products := make(map[uint]models.Product)
	if len(ids) > 0 {
		var rows []models.Product
		if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, p := range rows {
			products[p.ID] = p
		}
	}

	sales, err := ActiveFlashSales(db, ids, now)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(cart.Items))
	for _, it := range cart.Items {
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		discount := p.Discount
		if pct, ok := sales[p.ID]; ok {
			discount = pct
		}
		lines = append(lines, Line{
			ProductID: it.ProductID,
			Price:     p.Price,
			Discount:  discount,
			Quantity:  it.Quantity,
			Selected:  it.IsSelected,
		})
	}
	return lines, nil
}

// RecomputeCart refreshes the cart's derived totals over its selected items
// and persists them.
func RecomputeCart(db *gorm.DB, cart *models.Cart, now time.Time) error {
	lines, err := cartLines(db, cart, now)
	if err != nil {
		return err
	}

	var coupon *CouponTerms
	if cart.CouponCode != "" {
		coupon = &CouponTerms{Pct: cart.CouponDiscountPct}
	}

	totals := ComputeTotals(lines, coupon)
	cart.TotalPrice = totals.Subtotal
	cart.CouponDiscountAmount = totals.CouponAmount
	cart.FinalPrice = totals.Final

	return db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Updates(map[string]interface{}{
		"total_price":            cart.TotalPrice,
		"coupon_discount_amount": cart.CouponDiscountAmount,
		"final_price":            cart.FinalPrice,
	}).Error
}

// Snapshot freezes the cart's selected items into payment line items. The
// effective discount and resulting unit price are resolved once, here, and
// never change afterwards.
func Snapshot(db *gorm.DB, cart *models.Cart, now time.Time) ([]models.PaymentItem, Totals, error) {
	ids := make([]uint, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.IsSelected {
			ids = append(ids, it.ProductID)
		}
	}

	products := make(map[uint]models.Product)
	if len(ids) > 0 {
		var rows []models.Product
		if err := db.Preload("Variants").Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, Totals{}, err
		}
		for _, p := range rows {
			products[p.ID] = p
		}
	}

	sales, err := ActiveFlashSales(db, ids, now)
	if err != nil {
		return nil, Totals{}, err
	}

	var items []models.PaymentItem
	var lines []Line
	for _, it := range cart.Items {
		if !it.IsSelected {
			continue
		}
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		discount := p.Discount
		if pct, ok := sales[p.ID]; ok {
			discount = pct
		}

		item := models.PaymentItem{
			ProductID:          p.ID,
			ProductName:        p.Name,
			ProductImage:       p.Image,
			ColorID:            it.ColorID,
			SizeID:             it.SizeID,
			Price:              p.Price,
			Discount:           discount,
			PriceAfterDiscount: models.ApplyPercent(p.Price, discount),
			Quantity:           it.Quantity,
		}
		for _, v := range p.Variants {
			if v.ColorID == it.ColorID && v.SizeID == it.SizeID {
				item.ColorName = v.ColorName
				item.SizeValue = v.SizeValue
				break
			}
		}
		items = append(items, item)
		lines = append(lines, Line{
			ProductID: p.ID,
			Price:     p.Price,
			Discount:  discount,
			Quantity:  it.Quantity,
			Selected:  true,
		})
	}

	var coupon *CouponTerms
	if cart.CouponCode != "" {
		coupon = &CouponTerms{Pct: cart.CouponDiscountPct}
	}
	return items, ComputeTotals(lines, coupon), nil
}
