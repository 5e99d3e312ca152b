package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/config"
	"crackers_back_end/internal/database"
	"crackers_back_end/internal/routes"
	"crackers_back_end/internal/services"
)

func main() {
	config.Load()

	database.ConnectDatabases()

	threshold := config.LowStockThreshold()
	notifier := services.NewMailNotifier(config.AdminEmail())
	checkoutSvc := services.NewCheckoutService(database.DB, notifier, threshold)

	r := gin.Default()
	routes.RegisterRoutes(r, checkoutSvc, notifier, threshold)

	port := config.Port()
	log.Println("🚀 Serveur Kannan Crackers lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur serveur:", err)
	}
}
