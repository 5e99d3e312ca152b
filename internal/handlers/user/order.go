package user

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
)

// GetMyOrders récupère toutes les commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var orders []models.Order
	if err := database.DB.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderByID récupère une commande spécifique par ID.
// On vérifie que la commande appartient bien à l'utilisateur.
func GetOrderByID(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	var order models.Order
	err := database.DB.Preload("Items").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}
