package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

type VariantInput struct {
	ColorID   uint   `json:"color_id" binding:"required"`
	ColorName string `json:"color_name" binding:"required"`
	SizeID    uint   `json:"size_id" binding:"required"`
	SizeValue string `json:"size_value" binding:"required"`
	Stock     int    `json:"stock"`
}

type ProductInput struct {
	Name        string         `json:"name" binding:"required"`
	Brand       string         `json:"brand"`
	Description string         `json:"description"`
	Price       models.Money   `json:"price" binding:"required"`
	Discount    int            `json:"discount"`
	Image       string         `json:"image"`
	Variants    []VariantInput `json:"variants" binding:"required,min=1"`
}

func (in ProductInput) validate() error {
	if in.Price <= 0 {
		return errors.New("price must be positive")
	}
	if in.Discount < 0 || in.Discount > 100 {
		return errors.New("discount must be between 0 and 100")
	}
	return nil
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB, cache *Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := models.Product{
			Name:        input.Name,
			Brand:       input.Brand,
			Description: input.Description,
			Price:       input.Price,
			Discount:    input.Discount,
			Image:       input.Image,
		}
		for _, v := range input.Variants {
			product.Variants = append(product.Variants, models.ProductVariant{
				ColorID:   v.ColorID,
				ColorName: v.ColorName,
				SizeID:    v.SizeID,
				SizeValue: v.SizeValue,
				Stock:     v.Stock,
			})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /api/admin/products/:id
//
// Replaces the product's fields and its full variant set.
func UpdateProduct(db *gorm.DB, cache *Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := input.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var product models.Product
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&product, "id = ?", uint(id)).Error; err != nil {
				return err
			}

			product.Name = input.Name
			product.Brand = input.Brand
			product.Description = input.Description
			product.Price = input.Price
			product.Discount = input.Discount
			product.Image = input.Image
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductVariant{}).Error; err != nil {
				return err
			}
			for _, v := range input.Variants {
				variant := models.ProductVariant{
					ProductID: product.ID,
					ColorID:   v.ColorID,
					ColorName: v.ColorName,
					SizeID:    v.SizeID,
					SizeValue: v.SizeValue,
					Stock:     v.Stock,
				}
				if err := tx.Create(&variant).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		if cache != nil {
			cache.Invalidate(c.Request.Context(), product.ID)
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /api/admin/products/:id
func DeleteProduct(db *gorm.DB, cache *Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		result := db.Delete(&models.Product{}, "id = ?", uint(id))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if cache != nil {
			cache.Invalidate(c.Request.Context(), uint(id))
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
