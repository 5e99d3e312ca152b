package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
	"crackers_back_end/internal/services"
)

type inventoryStats struct {
	TotalProducts      int64   `json:"total_products"`
	LowStockProducts   int64   `json:"low_stock_products"`
	OutOfStockProducts int64   `json:"out_of_stock_products"`
	TotalValue         float64 `json:"total_value"`
	PendingOrders      int64   `json:"pending_orders"`
	TotalOrders        int64   `json:"total_orders"`
}

// GetDashboardStats : statistiques d'inventaire et de commandes (admin)
func GetDashboardStats(lowStockThreshold int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats inventoryStats
		db := database.DB

		db.Model(&models.Product{}).Where("is_active = ?", true).Count(&stats.TotalProducts)
		db.Model(&models.Product{}).
			Where("is_active = ? AND stock_quantity > 0 AND stock_quantity < ?", true, lowStockThreshold).
			Count(&stats.LowStockProducts)
		db.Model(&models.Product{}).
			Where("is_active = ? AND stock_quantity = 0", true).
			Count(&stats.OutOfStockProducts)
		db.Model(&models.Order{}).Count(&stats.TotalOrders)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.PendingOrders)

		// Valeur totale de l'inventaire
		var products []models.Product
		db.Where("is_active = ?", true).Find(&products)
		for _, p := range products {
			stats.TotalValue += float64(p.StockQuantity) * p.Price
		}

		c.JSON(http.StatusOK, stats)
	}
}

// GetStaffInventory : vue inventaire du staff, stocks et drapeaux de
// réapprovisionnement inclus.
func GetStaffInventory(lowStockThreshold int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := database.DB.Preload("Category").Order("name").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture inventaire"})
			return
		}

		items := make([]gin.H, 0, len(products))
		for _, p := range products {
			items = append(items, gin.H{
				"product":      p,
				"is_low_stock": p.IsLowStock(lowStockThreshold),
			})
		}

		c.JSON(http.StatusOK, gin.H{"inventory": items, "threshold": lowStockThreshold})
	}
}

// GetAllOrders liste toutes les commandes pour le back-office (staff/admin)
func GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := database.DB.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus fait avancer le statut d'une commande (staff/admin).
// pending → processing → shipped → delivered ; cancelled tant que la
// commande n'est pas terminée. L'e-mail de statut est best-effort.
func UpdateOrderStatus(notifier services.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut requis"})
			return
		}

		var order models.Order
		if err := database.DB.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}

		if !models.CanTransition(order.Status, req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Transition de statut invalide: " + order.Status + " → " + req.Status,
			})
			return
		}

		if err := database.DB.Model(&order).Update("status", req.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
			return
		}
		order.Status = req.Status

		if err := notifier.SendOrderStatus(order, req.Status); err != nil {
			log.Printf("⚠️ Erreur envoi email statut pour commande %d: %v", order.ID, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "order": order})
	}
}

// ApproveCustomer valide un compte client (admin)
func ApproveCustomer(c *gin.Context) {
	var u models.User
	if err := database.DB.First(&u, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if err := database.DB.Model(&u).Update("is_approved", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur approbation"})
		return
	}

	log.Printf("✅ Client approuvé: %s", u.Email)
	c.JSON(http.StatusOK, gin.H{"message": "Client approuvé", "user": u})
}
