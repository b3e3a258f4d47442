package warrantyControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errReturnWindowClosed = errors.New("Đã quá thời hạn đổi trả 7 ngày")

// GET /api/warranties
func GetUserWarranties(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var warranties []models.Warranty
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").Find(&warranties).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch warranties"})
			return
		}

		// Lapse anything whose window closed since the last read.
		now := time.Now()
		for i := range warranties {
			w := &warranties[i]
			if w.Status == models.WarrantyStatusActive && now.After(w.ReturnBy) {
				db.Model(&models.Warranty{}).Where("id = ?", w.ID).
					Update("status", models.WarrantyStatusExpired)
				w.Status = models.WarrantyStatusExpired
			}
		}

		c.JSON(http.StatusOK, warranties)
	}
}

// POST /api/warranties/:id/return
//
// A return may only be requested while the warranty is active and the
// 7-day window is still open.
func RequestReturn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var warranty models.Warranty
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND user_id = ?", c.Param("id"), userID).
				First(&warranty).Error; err != nil {
				return err
			}

			if warranty.Status != models.WarrantyStatusActive {
				return errors.New("warranty is not active")
			}
			if time.Now().After(warranty.ReturnBy) {
				tx.Model(&models.Warranty{}).Where("id = ?", warranty.ID).
					Update("status", models.WarrantyStatusExpired)
				return errReturnWindowClosed
			}

			warranty.Status = models.WarrantyStatusReturnRequested
			return tx.Model(&models.Warranty{}).Where("id = ?", warranty.ID).
				Update("status", models.WarrantyStatusReturnRequested).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Warranty not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Return requested", "warranty": warranty})
	}
}

// PUT /api/admin/warranties/:id/status
//
// Admin resolves a requested return, marking the item returned.
func ResolveReturn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var warranty models.Warranty
		if err := db.First(&warranty, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Warranty not found"})
			return
		}
		if warranty.Status != models.WarrantyStatusReturnRequested {
			c.JSON(http.StatusBadRequest, gin.H{"error": "warranty has no pending return request"})
			return
		}

		if err := db.Model(&models.Warranty{}).Where("id = ?", warranty.ID).
			Update("status", models.WarrantyStatusReturned).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update warranty"})
			return
		}
		warranty.Status = models.WarrantyStatusReturned
		c.JSON(http.StatusOK, warranty)
	}
}
