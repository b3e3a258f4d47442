package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// Import sheet layout: one row per variant.
// id | name | brand | description | price | discount | image | color_id | color_name | size_id | size_value | stock
const importColumns = 12

// POST /api/admin/products/import-excel
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]
			if len(row.Cells) < importColumns {
				skippedCount++
				continue
			}

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			brand := get(2)
			description := get(3)
			price, err1 := strconv.ParseInt(get(4), 10, 64)
			discount, _ := strconv.Atoi(get(5))
			image := get(6)
			colorID, err2 := strconv.Atoi(get(7))
			colorName := get(8)
			sizeID, err3 := strconv.Atoi(get(9))
			sizeValue := get(10)
			stock, _ := strconv.Atoi(get(11))

			if name == "" || err1 != nil || err2 != nil || err3 != nil {
				skippedCount++
				continue
			}

			var product models.Product
			found := false
			if id, err := strconv.Atoi(idStr); err == nil && id > 0 {
				if err := db.First(&product, "id = ?", uint(id)).Error; err == nil {
					found = true
				}
			}
			if !found {
				if err := db.Where("name = ? AND brand = ?", name, brand).First(&product).Error; err == nil {
					found = true
				}
			}

			product.Name = name
			product.Brand = brand
			product.Description = description
			product.Price = price
			product.Discount = discount
			product.Image = image

			if found {
				if err := db.Save(&product).Error; err != nil {
					skippedCount++
					continue
				}
				updatedCount++
			} else {
				if err := db.Create(&product).Error; err != nil {
					skippedCount++
					continue
				}
				createdCount++
			}

			variant := models.ProductVariant{
				ProductID: product.ID,
				ColorID:   uint(colorID),
				ColorName: colorName,
				SizeID:    uint(sizeID),
				SizeValue: sizeValue,
				Stock:     stock,
			}
			var existing models.ProductVariant
			err = db.Where("product_id = ? AND color_id = ? AND size_id = ?",
				product.ID, colorID, sizeID).First(&existing).Error
			if err == nil {
				existing.ColorName = colorName
				existing.SizeValue = sizeValue
				existing.Stock = stock
				db.Save(&existing)
			} else {
				db.Create(&variant)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"created": createdCount,
			"updated": updatedCount,
			"skipped": skippedCount,
		})
	}
}

// GET /api/admin/products/export-excel
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Variants").Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		xlFile := xlsx.NewFile()
		sheet, err := xlFile.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build Excel file"})
			return
		}

		header := sheet.AddRow()
		for _, title := range []string{
			"id", "name", "brand", "description", "price", "discount",
			"image", "color_id", "color_name", "size_id", "size_value", "stock",
		} {
			header.AddCell().SetString(title)
		}

		for _, p := range products {
			if len(p.Variants) == 0 {
				row := sheet.AddRow()
				fillProductCells(row, p)
				for j := 0; j < 5; j++ {
					row.AddCell()
				}
				continue
			}
			for _, v := range p.Variants {
				row := sheet.AddRow()
				fillProductCells(row, p)
				row.AddCell().SetInt(int(v.ColorID))
				row.AddCell().SetString(v.ColorName)
				row.AddCell().SetInt(int(v.SizeID))
				row.AddCell().SetString(v.SizeValue)
				row.AddCell().SetInt(v.Stock)
			}
		}

		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := xlFile.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
		}
	}
}

func fillProductCells(row *xlsx.Row, p models.Product) {
	row.AddCell().SetInt(int(p.ID))
	row.AddCell().SetString(p.Name)
	row.AddCell().SetString(p.Brand)
	row.AddCell().SetString(p.Description)
	row.AddCell().SetInt64(p.Price)
	row.AddCell().SetInt(p.Discount)
	row.AddCell().SetString(p.Image)
}
