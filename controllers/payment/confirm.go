package paymentControllers

import (
	"errors"
	"log"

	"github.com/solestride/storefront-api/events"
	"github.com/solestride/storefront-api/models"
	"github.com/solestride/storefront-api/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadCheckout assembles the checkout context for a user: their cart with
// selected items, shipping info, and the frozen pricing snapshot.
func (s *Service) loadCheckout(userID, clientIP string) (checkout, error) {
	var cart models.Cart
	if err := s.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return checkout{}, err
	}

	selected := 0
	for _, it := range cart.Items {
		if it.IsSelected {
			selected++
		}
	}
	if selected == 0 {
		return checkout{}, ErrEmptyCart
	}
	if cart.ShippingName == "" || cart.ShippingPhone == "" || cart.ShippingAddress == "" {
		return checkout{}, ErrMissingShipping
	}

	items, totals, err := pricing.Snapshot(s.db, &cart, s.now())
	if err != nil {
		return checkout{}, err
	}
	if len(items) == 0 {
		return checkout{}, ErrEmptyCart
	}

	return checkout{
		userID:   userID,
		clientIP: clientIP,
		cart:     &cart,
		items:    items,
		totals: checkoutTotals{
			Subtotal:     totals.Subtotal,
			CouponAmount: totals.CouponAmount,
			Final:        totals.Final,
		},
	}, nil
}

// confirmPayment promotes a pending payment inside one transaction; the
// status change and the cart/stock reconciliation either both land or
// neither does.
func (s *Service) confirmPayment(p *models.Payment) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.confirmPaymentTx(tx, p)
	})
	if err != nil {
		return err
	}
	s.emitConfirmed(p)
	return nil
}

// confirmPaymentTx reloads the payment under a row lock, flips it to
// confirmed, consumes variant stock and prunes the purchased items from the
// live cart. Re-running it for an already confirmed payment is a no-op, so
// duplicate gateway callbacks stay harmless.
func (s *Service) confirmPaymentTx(tx *gorm.DB, p *models.Payment) error {
	var fresh models.Payment
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", p.ID).First(&fresh).Error; err != nil {
		return err
	}
	if fresh.Status == models.PaymentStatusConfirmed {
		p.Status = models.PaymentStatusConfirmed
		return nil
	}
	if fresh.Status != models.PaymentStatusPending {
		log.Printf("payment: order %s is %s, skipping confirmation", fresh.OrderID, fresh.Status)
		return nil
	}

	now := s.now()
	if err := tx.Model(&models.Payment{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"status":       models.PaymentStatusConfirmed,
		"confirmed_at": now,
	}).Error; err != nil {
		return err
	}
	p.Status = models.PaymentStatusConfirmed
	p.ConfirmedAt = &now

	var items []models.PaymentItem
	if err := tx.Where("payment_id = ?", p.ID).Find(&items).Error; err != nil {
		return err
	}

	// Consume stock per variant. Money has already changed hands at this
	// point, so shortfalls clamp to zero instead of failing the order.
	for _, it := range items {
		var variant models.ProductVariant
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ? AND color_id = ? AND size_id = ?", it.ProductID, it.ColorID, it.SizeID).
			First(&variant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		variant.Stock -= it.Quantity
		if variant.Stock < 0 {
			log.Printf("payment: stock underflow on product %d variant %d/%d", it.ProductID, it.ColorID, it.SizeID)
			variant.Stock = 0
		}
		if err := tx.Save(&variant).Error; err != nil {
			return err
		}
	}

	return s.pruneCartTx(tx, p.UserID, items)
}

// pruneCartTx removes the purchased items from the user's live cart,
// matching by the product/color/size tuple, then recomputes the cart's
// totals over whatever remains. Items already absent are skipped.
func (s *Service) pruneCartTx(tx *gorm.DB, userID string, items []models.PaymentItem) error {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, it := range items {
		if err := tx.Where("cart_id = ? AND product_id = ? AND color_id = ? AND size_id = ?",
			cart.CartID, it.ProductID, it.ColorID, it.SizeID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Preload("Items").Where("cart_id = ?", cart.CartID).First(&cart).Error; err != nil {
		return err
	}
	return pricing.RecomputeCart(tx, &cart, s.now())
}

func (s *Service) emitCreated(p *models.Payment) {
	events.Emit(s.publisher, events.OrderCreated, map[string]interface{}{
		"order_id":    p.OrderID,
		"user_id":     p.UserID,
		"method":      p.Method,
		"final_price": p.FinalPrice,
	})
}

func (s *Service) emitConfirmed(p *models.Payment) {
	events.Emit(s.publisher, events.OrderConfirmed, map[string]interface{}{
		"order_id":    p.OrderID,
		"user_id":     p.UserID,
		"method":      p.Method,
		"final_price": p.FinalPrice,
	})
}
