package product

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/cache"
	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
	"crackers_back_end/internal/services"
)

// CategoryGroup : une catégorie et ses produits actifs, pour l'affichage
// du catalogue.
type CategoryGroup struct {
	Category models.Category  `json:"category"`
	Products []models.Product `json:"products"`
}

// GetCatalog retourne le catalogue : produits actifs groupés par catégorie.
// Lecture seule, mise en cache Redis.
func GetCatalog(c *gin.Context) {
	var cached []CategoryGroup
	if cache.Get(cache.ProductsCacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	var categories []models.Category
	if err := database.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}

	var products []models.Product
	if err := database.DB.Where("is_active = ?", true).Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits"})
		return
	}

	byCategory := make(map[uint][]models.Product, len(categories))
	for _, p := range products {
		byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
	}

	groups := make([]CategoryGroup, 0, len(categories))
	for _, cat := range categories {
		if prods := byCategory[cat.ID]; len(prods) > 0 {
			groups = append(groups, CategoryGroup{Category: cat, Products: prods})
		}
	}

	cache.Set(cache.ProductsCacheKey, groups, cache.ProductCacheTTL)
	c.JSON(http.StatusOK, groups)
}

// GetProduct retourne un produit par id (même inactif, pour le back-office).
func GetProduct(c *gin.Context) {
	var p models.Product
	if err := database.DB.Preload("Category").First(&p, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProduct crée un produit (staff/admin).
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'category_id' sont obligatoires"})
		return
	}
	if p.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix ne peut pas être négatif"})
		return
	}
	if p.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le stock ne peut pas être négatif"})
		return
	}

	var category models.Category
	if err := database.DB.First(&category, "id = ?", p.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
		return
	}

	p.ID = 0
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := database.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	cache.InvalidateCatalog()

	// Indexation Elasticsearch en arrière-plan
	p.Category = category
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// UpdateProduct met à jour les champs éditables d'un produit (staff/admin).
func UpdateProduct(c *gin.Context) {
	var p models.Product
	if err := database.DB.First(&p, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		CategoryID  *uint    `json:"category_id"`
		ImageURL    *string  `json:"image_url"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix ne peut pas être négatif"})
			return
		}
		p.Price = *req.Price
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := database.DB.First(&category, "id = ?", *req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Catégorie introuvable"})
			return
		}
		p.CategoryID = *req.CategoryID
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := database.DB.Save(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateCatalog()
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// DeleteProduct supprime un produit sans condition (admin). Les lignes de
// commande gardent leurs snapshots nom/prix, l'historique survit.
func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	res := database.DB.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	cache.InvalidateCatalog()
	go services.RemoveProductFromIndex(uint(id))

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// SearchProducts : recherche Elasticsearch en priorité, repli SQL sinon.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	if results, err := services.SearchProducts(query); err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, gin.H{"results": results, "source": "elasticsearch"})
		return
	}

	// Repli SQL
	var products []models.Product
	like := "%" + query + "%"
	if err := database.DB.Preload("Category").
		Where("is_active = ?", true).
		Where("name LIKE ? OR description LIKE ?", like, like).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche produits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": products, "source": "sql"})
}
