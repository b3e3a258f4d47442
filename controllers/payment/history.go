package paymentControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/events"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GET /api/payment/order-history
func (s *Service) OrderHistoryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var payments []models.Payment
		if err := s.db.Preload("Items").
			Where("user_id = ?", userIDVal.(string)).
			Order("created_at DESC").
			Find(&payments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order history"})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}

// GET /api/payment/detail/:id
func (s *Service) DetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var payment models.Payment
		err := s.db.Preload("Items").
			Where("id = ? AND user_id = ?", c.Param("id"), userIDVal.(string)).
			First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, payment)
	}
}

// POST /api/payment/cancel-order/:orderID
//
// The owning user may cancel while the order is still pending or
// confirmed. Stock consumed at confirmation is returned.
func (s *Service) CancelOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)
		orderID := c.Param("orderID")

		var payment models.Payment
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("order_id = ? AND user_id = ?", orderID, userID).
				First(&payment).Error; err != nil {
				return err
			}
			if !models.CanTransition(payment.Status, models.PaymentStatusCancelled) {
				return errors.New("order can no longer be cancelled")
			}

			if payment.Status == models.PaymentStatusConfirmed {
				if err := s.restoreStockTx(tx, payment.ID); err != nil {
					return err
				}
			}

			payment.Status = models.PaymentStatusCancelled
			return tx.Model(&models.Payment{}).Where("id = ?", payment.ID).
				Update("status", models.PaymentStatusCancelled).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		events.Emit(s.publisher, events.OrderStatusChanged, map[string]interface{}{
			"order_id": orderID,
			"status":   models.PaymentStatusCancelled,
		})
		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
	}
}

func (s *Service) restoreStockTx(tx *gorm.DB, paymentID uint) error {
	var items []models.PaymentItem
	if err := tx.Where("payment_id = ?", paymentID).Find(&items).Error; err != nil {
		return err
	}
	for _, it := range items {
		err := tx.Model(&models.ProductVariant{}).
			Where("product_id = ? AND color_id = ? AND size_id = ?", it.ProductID, it.ColorID, it.SizeID).
			Update("stock", gorm.Expr("stock + ?", it.Quantity)).Error
		if err != nil {
			return err
		}
	}
	return nil
}
