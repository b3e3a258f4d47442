package cartControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"github.com/solestride/storefront-api/pricing"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	ColorID   uint `json:"color_id" binding:"required"`
	SizeID    uint `json:"size_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type SelectionInput struct {
	ItemID     uint  `json:"item_id"`
	SelectAll  *bool `json:"select_all"`
	IsSelected bool  `json:"is_selected"`
}

type ShippingInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

func userCart(db *gorm.DB, c *gin.Context) (*models.Cart, string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, "", false
	}
	userID := userIDVal.(string)

	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User cart not found"})
		return nil, "", false
	}
	return &cart, userID, true
}

// GET /api/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}
		if err := pricing.RecomputeCart(db, cart, time.Now()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cart totals"})
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// POST /api/cart
//
// Adds a variant to the cart or bumps its quantity. Stock is only checked
// here; it is consumed when a payment is confirmed.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}

		var variant models.ProductVariant
		err := db.Where("product_id = ? AND color_id = ? AND size_id = ?",
			input.ProductID, input.ColorID, input.SizeID).First(&variant).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product variant does not exist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ? AND color_id = ? AND size_id = ?",
			cart.CartID, input.ProductID, input.ColorID, input.SizeID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if variant.Stock < input.Quantity {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
				return
			}
			item = models.CartItem{
				CartID:     cart.CartID,
				ProductID:  input.ProductID,
				ColorID:    input.ColorID,
				SizeID:     input.SizeID,
				Quantity:   input.Quantity,
				IsSelected: true,
				AddedAt:    time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		default:
			if variant.Stock < item.Quantity+input.Quantity {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
				return
			}
			item.Quantity += input.Quantity
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		refreshTotals(db, cart)
		c.JSON(http.StatusOK, item)
	}
}

// PUT /api/cart/item/:itemID
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Quantity int `json:"quantity" binding:"required,min=1"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}

		var item models.CartItem
		if err := db.Where("id = ? AND cart_id = ?", c.Param("itemID"), cart.CartID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		var variant models.ProductVariant
		if err := db.Where("product_id = ? AND color_id = ? AND size_id = ?",
			item.ProductID, item.ColorID, item.SizeID).First(&variant).Error; err == nil {
			if variant.Stock < input.Quantity {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
				return
			}
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		refreshTotals(db, cart)
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/cart/item/:itemID
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}

		result := db.Where("id = ? AND cart_id = ?", c.Param("itemID"), cart.CartID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		refreshTotals(db, cart)
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /api/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}
		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		refreshTotals(db, cart)
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// PUT /api/cart/selection
func UpdateSelection(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SelectionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}

		if input.SelectAll != nil {
			if err := db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).
				Update("is_selected", *input.SelectAll).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update selection"})
				return
			}
		} else {
			result := db.Model(&models.CartItem{}).
				Where("id = ? AND cart_id = ?", input.ItemID, cart.CartID).
				Update("is_selected", input.IsSelected)
			if result.Error != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update selection"})
				return
			}
			if result.RowsAffected == 0 {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
		}

		refreshTotals(db, cart)
		if err := db.Preload("Items").First(cart, cart.CartID).Error; err == nil {
			c.JSON(http.StatusOK, cart)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Selection updated"})
	}
}

// PUT /api/cart/shipping
func SetShippingInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ShippingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		cart, _, ok := userCart(db, c)
		if !ok {
			return
		}

		err := db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).Updates(map[string]interface{}{
			"shipping_name":    input.Name,
			"shipping_phone":   input.Phone,
			"shipping_address": input.Address,
		}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save shipping info"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shipping info saved"})
	}
}

// refreshTotals reloads items and recomputes the derived totals after a
// cart mutation. The mutation itself has already succeeded, so failures are
// logged rather than surfaced.
func refreshTotals(db *gorm.DB, cart *models.Cart) {
	var fresh models.Cart
	if err := db.Preload("Items").Where("cart_id = ?", cart.CartID).First(&fresh).Error; err != nil {
		log.Printf("cart: failed to reload cart %d for totals: %v", cart.CartID, err)
		return
	}
	if err := pricing.RecomputeCart(db, &fresh, time.Now()); err != nil {
		log.Printf("cart: failed to recompute totals for cart %d: %v", cart.CartID, err)
	}
}
