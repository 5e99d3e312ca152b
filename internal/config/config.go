package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Port HTTP du serveur
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

// DatabaseDriver : "sqlite" ou "postgres"
func DatabaseDriver() string {
	if d := os.Getenv("DB_DRIVER"); d != "" {
		return d
	}
	return "sqlite"
}

func DatabaseDSN() string {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		return dsn
	}
	return "crackers.db"
}

// LowStockThreshold : seuil en dessous duquel un produit déclenche
// une alerte de réapprovisionnement.
func LowStockThreshold() int {
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("⚠️ LOW_STOCK_THRESHOLD invalide (%q), seuil par défaut utilisé", v)
	}
	return 10
}

// AdminEmail : destinataire des alertes de stock faible.
func AdminEmail() string {
	if e := os.Getenv("ADMIN_EMAIL"); e != "" {
		return e
	}
	return os.Getenv("SMTP_USERNAME")
}

func FromEmail() string {
	if e := os.Getenv("FROM_EMAIL"); e != "" {
		return e
	}
	return "noreply@kannancrackers.in"
}

func JWTSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}
