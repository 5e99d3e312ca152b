package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"crackers_back_end/internal/config"
	"crackers_back_end/internal/models"
)

// --- Variables Globales ---
var (
	DB      *gorm.DB
	Redis   *redis.Client
	Elastic *elasticsearch.Client
)

// ConnectDatabases initialise la base relationnelle, Redis et Elasticsearch.
// Seule la base relationnelle est obligatoire : Redis et Elastic sont
// optionnels (cache et recherche dégradent proprement sans eux).
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ConnectSQL(); err != nil {
		log.Fatalf("❌ Échec initialisation base de données: %v", err)
	}

	connectRedis(ctx)
	connectElastic()

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// BASE RELATIONNELLE (GORM)
// =============================================

// ConnectSQL ouvre la base via GORM et lance les migrations.
func ConnectSQL() error {
	dialector, err := buildDialector(config.DatabaseDriver(), config.DatabaseDSN())
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("ouverture base: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("accès sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping base: %v", err)
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	log.Printf("✅ Base de données connectée (%s)", config.DatabaseDriver())
	return nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("DB_DRIVER non supporté: %q (sqlite ou postgres)", driver)
	}
}

// Migrate crée/complète le schéma pour tous les modèles.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("migration: %v", err)
	}
	return nil
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Println("⚠️ REDIS_HOST non configuré — cache et rate limiting désactivés")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     host,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Redis injoignable:", err)
		Redis = nil
		return
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		log.Println("⚠️ ELASTIC_URL non configuré — recherche plein texte via SQL uniquement")
		return
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Println("⚠️ Erreur création client Elasticsearch:", err)
		return
	}

	res, err := client.Info()
	if err != nil {
		log.Println("⚠️ Elasticsearch injoignable:", err)
		return
	}
	defer res.Body.Close()

	Elastic = client
	log.Println("✅ Connecté à Elasticsearch")
}
