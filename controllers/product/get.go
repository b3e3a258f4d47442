package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Variants")

		if brand := c.Query("brand"); brand != "" {
			query = query.Where("brand = ?", brand)
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("name ILIKE ?", "%"+search+"%")
		}
		if minPrice, err := strconv.ParseInt(c.Query("min_price"), 10, 64); err == nil {
			query = query.Where("price >= ?", minPrice)
		}
		if maxPrice, err := strconv.ParseInt(c.Query("max_price"), 10, 64); err == nil && maxPrice > 0 {
			query = query.Where("price <= ?", maxPrice)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GET /api/products/:id
func GetProductByID(db *gorm.DB, cache *Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var product *models.Product
		if cache != nil {
			product, err = cache.GetProduct(c.Request.Context(), db, uint(id))
		} else {
			var p models.Product
			err = db.Preload("Variants").First(&p, "id = ?", uint(id)).Error
			product = &p
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
