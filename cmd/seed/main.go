package main

import (
	"log"

	"crackers_back_end/internal/config"
	"crackers_back_end/internal/database"
)

// Remplit la base avec le catalogue de démonstration et les comptes de base.
func main() {
	config.Load()

	if err := database.ConnectSQL(); err != nil {
		log.Fatalf("❌ Échec connexion base de données: %v", err)
	}

	if err := database.SeedAccounts(database.DB); err != nil {
		log.Fatalf("❌ Échec création comptes: %v", err)
	}
	if err := database.SeedMockData(database.DB); err != nil {
		log.Fatalf("❌ Échec création catalogue: %v", err)
	}

	log.Println("✅ Données de démonstration créées avec succès")
}
