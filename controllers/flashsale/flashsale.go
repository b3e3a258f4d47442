package flashsaleControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

type FlashSaleInput struct {
	ProductID   uint      `json:"product_id" binding:"required"`
	DiscountPct int       `json:"discount_pct" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
}

func (in FlashSaleInput) validate() error {
	if in.DiscountPct < 1 || in.DiscountPct > 100 {
		return errors.New("discount_pct must be between 1 and 100")
	}
	if !in.EndDate.After(in.StartDate) {
		return errors.New("end_date must be after start_date")
	}
	return nil
}

// windowsOverlap reports whether [aStart, aEnd] and [bStart, bEnd] share any
// instant. Touching endpoints count as overlap.
func windowsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// GET /api/flash-sales
//
// Public listing of the sales active right now.
func GetActiveFlashSales(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		var sales []models.FlashSale
		if err := db.Order("end_date").Find(&sales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch flash sales"})
			return
		}
		active := make([]models.FlashSale, 0, len(sales))
		for _, s := range sales {
			if s.ActiveAt(now) {
				active = append(active, s)
			}
		}
		c.JSON(http.StatusOK, active)
	}
}

// GET /api/admin/flash-sales
func GetAllFlashSales(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("start_date DESC")
		if productID, err := strconv.Atoi(c.Query("product_id")); err == nil {
			query = query.Where("product_id = ?", productID)
		}

		var sales []models.FlashSale
		if err := query.Find(&sales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch flash sales"})
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}

// POST /api/admin/flash-sales
//
// Rejects a sale whose window overlaps an existing sale for the same
// product, so at most one override is ever active per product.
func CreateFlashSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input FlashSaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		sale := models.FlashSale{
			ProductID:   input.ProductID,
			DiscountPct: input.DiscountPct,
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			var existing []models.FlashSale
			if err := tx.Where("product_id = ?", input.ProductID).Find(&existing).Error; err != nil {
				return err
			}
			for _, other := range existing {
				if windowsOverlap(input.StartDate, input.EndDate, other.StartDate, other.EndDate) {
					return errors.New("flash sale window overlaps an existing sale for this product")
				}
			}
			return tx.Create(&sale).Error
		})
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

// PUT /api/admin/flash-sales/:id
func UpdateFlashSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flash sale id"})
			return
		}

		var input FlashSaleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var sale models.FlashSale
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&sale, "id = ?", uint(id)).Error; err != nil {
				return err
			}

			var existing []models.FlashSale
			if err := tx.Where("product_id = ?", input.ProductID).Find(&existing).Error; err != nil {
				return err
			}
			for _, other := range existing {
				if other.ID == sale.ID {
					continue
				}
				if windowsOverlap(input.StartDate, input.EndDate, other.StartDate, other.EndDate) {
					return errors.New("flash sale window overlaps an existing sale for this product")
				}
			}

			sale.ProductID = input.ProductID
			sale.DiscountPct = input.DiscountPct
			sale.StartDate = input.StartDate
			sale.EndDate = input.EndDate
			return tx.Save(&sale).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flash sale not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

// DELETE /api/admin/flash-sales/:id
func DeleteFlashSale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid flash sale id"})
			return
		}

		result := db.Delete(&models.FlashSale{}, "id = ?", uint(id))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete flash sale"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Flash sale not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Flash sale deleted"})
	}
}
