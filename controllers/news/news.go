package newsControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/models"
	"gorm.io/gorm"
)

type NewsInput struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	Image     string `json:"image"`
	Published *bool  `json:"published"`
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// GET /api/news
func GetPublishedNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var articles []models.News
		if err := db.Where("published = ?", true).
			Order("created_at DESC").Find(&articles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
			return
		}
		c.JSON(http.StatusOK, articles)
	}
}

// GET /api/news/:slug
func GetNewsBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var article models.News
		if err := db.Where("slug = ? AND published = ?", c.Param("slug"), true).
			First(&article).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusOK, article)
	}
}

// GET /api/admin/news
func GetAllNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var articles []models.News
		if err := db.Order("created_at DESC").Find(&articles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
			return
		}
		c.JSON(http.StatusOK, articles)
	}
}

// POST /api/admin/news
func CreateNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input NewsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		slug := input.Slug
		if slug == "" {
			slug = slugify(input.Title)
		}

		article := models.News{
			Title:   input.Title,
			Slug:    slug,
			Summary: input.Summary,
			Content: input.Content,
			Image:   input.Image,
		}
		if input.Published != nil {
			article.Published = *input.Published
		}

		if err := db.Create(&article).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already exists"})
			return
		}
		c.JSON(http.StatusCreated, article)
	}
}

// PUT /api/admin/news/:id
func UpdateNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
			return
		}

		var input NewsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var article models.News
		if err := db.First(&article, "id = ?", uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}

		article.Title = input.Title
		if input.Slug != "" {
			article.Slug = input.Slug
		}
		article.Summary = input.Summary
		article.Content = input.Content
		article.Image = input.Image
		if input.Published != nil {
			article.Published = *input.Published
		}

		if err := db.Save(&article).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
			return
		}
		c.JSON(http.StatusOK, article)
	}
}

// DELETE /api/admin/news/:id
func DeleteNews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
			return
		}

		result := db.Delete(&models.News{}, "id = ?", uint(id))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
	}
}
