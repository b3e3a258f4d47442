package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/events"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GET /api/admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Items").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var orders []models.Payment
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/admin/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")

		var order models.Payment
		err := db.Preload("Items").
			Where("id = ? OR order_id = ?", id, id).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/admin/orders/:orderID/status
//
// Admin moves an order forward through its lifecycle. Reaching delivered
// starts the return window: a warranty row is spawned per line item.
func UpdateOrderStatusHandler(db *gorm.DB, hub *Hub, pub events.PublisherInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, ok := models.ParsePaymentStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order status"})
			return
		}

		var order models.Payment
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Items").
				Where("id = ? OR order_id = ?", c.Param("orderID"), c.Param("orderID")).
				First(&order).Error; err != nil {
				return err
			}

			if !models.CanTransition(order.Status, newStatus) {
				return errors.New("invalid status transition: " + string(order.Status) + " -> " + string(newStatus))
			}

			updates := map[string]interface{}{"status": newStatus}
			if newStatus == models.PaymentStatusDelivered {
				now := time.Now()
				updates["delivered_at"] = now
				if err := spawnWarrantiesTx(tx, &order, now); err != nil {
					return err
				}
			}
			if err := tx.Model(&models.Payment{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
				return err
			}
			order.Status = newStatus
			return nil
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if hub != nil {
			hub.Broadcast(order)
		}
		events.Emit(pub, events.OrderStatusChanged, map[string]interface{}{
			"order_id": order.OrderID,
			"user_id":  order.UserID,
			"status":   order.Status,
		})

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
	}
}

// spawnWarrantiesTx creates one warranty per line item with a 7-day return
// deadline counted from delivery.
func spawnWarrantiesTx(tx *gorm.DB, order *models.Payment, deliveredAt time.Time) error {
	for _, item := range order.Items {
		warranty := models.Warranty{
			UserID:        order.UserID,
			PaymentID:     order.ID,
			PaymentItemID: item.ID,
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			StartDate:     deliveredAt,
			ReturnBy:      deliveredAt.Add(models.ReturnWindow),
			Status:        models.WarrantyStatusActive,
		}
		if err := tx.Create(&warranty).Error; err != nil {
			return err
		}
	}
	return nil
}
