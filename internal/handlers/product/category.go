package product

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/cache"
	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
)

// CreateCategory crée une catégorie (staff/admin)
func CreateCategory(c *gin.Context) {
	var cat models.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if cat.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le champ 'name' est obligatoire"})
		return
	}

	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog()
	c.JSON(http.StatusOK, cat)
}

// GetAllCategories liste les catégories (cache Redis)
func GetAllCategories(c *gin.Context) {
	var cached []models.Category
	if cache.Get(cache.CategoriesCacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	var cats []models.Category
	if err := database.DB.Order("name").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.Set(cache.CategoriesCacheKey, cats, cache.ProductCacheTTL)
	c.JSON(http.StatusOK, cats)
}
