package database

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"gorm.io/gorm"

	"crackers_back_end/internal/models"
	"crackers_back_end/internal/utils"
)

var mockCategories = []models.Category{
	{Name: "Aerial Crackers", Description: "Spectacular aerial fireworks that light up the sky"},
	{Name: "Ground Chakras", Description: "Spinning fireworks that create beautiful patterns on the ground"},
	{Name: "Sparklers", Description: "Hand-held fireworks that emit colorful sparks"},
	{Name: "Fountains", Description: "Stationary fireworks that shoot colorful sparks upward"},
	{Name: "Rockets", Description: "Sky-shooting fireworks with various effects"},
	{Name: "Roman Candles", Description: "Tube-based fireworks shooting multiple colored balls"},
	{Name: "Garland Crackers", Description: "String of small crackers for continuous excitement"},
	{Name: "Flower Pots", Description: "Beautiful fountain-like fireworks with expanding effects"},
	{Name: "Sound Crackers", Description: "Loud crackers with various sound effects"},
	{Name: "Gift Boxes", Description: "Assorted fireworks collections in attractive packages"},
}

var mockProductTemplates = map[string][]string{
	"Aerial Crackers":  {"Sky Blaster", "Star Rain", "Color Burst", "Thunder Cloud", "Night Pearl"},
	"Ground Chakras":   {"Spin Master", "Color Wheel", "Ground Star", "Rainbow Spin", "Light Circle"},
	"Sparklers":        {"Golden Sparkle", "Color Rain", "Magic Wand", "Silver Shine", "Star Stick"},
	"Fountains":        {"Color Shower", "Rainbow Fall", "Crystal Spray", "Diamond Dust", "Pearl Stream"},
	"Rockets":          {"Sky Hunter", "Star Chaser", "Moon Rider", "Cloud Pierce", "Night Flyer"},
	"Roman Candles":    {"Color Shot", "Star Stream", "Night Ball", "Rainbow Balls", "Pearl Shot"},
	"Garland Crackers": {"Joy String", "Festival Chain", "Celebration Line", "Party Link", "Happy Thread"},
	"Flower Pots":      {"Garden Bloom", "Color Bloom", "Night Flower", "Star Blossom", "Rainbow Pot"},
	"Sound Crackers":   {"Thunder King", "Sound Storm", "Blast Master", "Echo Plus", "Boom Box"},
	"Gift Boxes":       {"Festival Pack", "Party Box", "Celebration Kit", "Family Pack", "Premium Collection"},
}

var mockSizes = []struct {
	Name     string
	MinPrice float64
	MaxPrice float64
}{
	{"Small", 50.0, 100.0},
	{"Medium", 100.0, 200.0},
	{"Large", 200.0, 400.0},
	{"Premium", 500.0, 800.0},
	{"Deluxe", 1000.0, 2000.0},
}

// SeedMockData remplit le catalogue de démonstration : 10 catégories,
// 5 gammes de produits par catégorie, 5 tailles par gamme.
func SeedMockData(db *gorm.DB) error {
	log.Println("Création des catégories et produits...")

	for i, catData := range mockCategories {
		category := catData
		if err := db.Create(&category).Error; err != nil {
			return fmt.Errorf("création catégorie %s: %v", category.Name, err)
		}

		templates := mockProductTemplates[category.Name]
		for j, baseName := range templates {
			for _, size := range mockSizes {
				price := size.MinPrice + rand.Float64()*(size.MaxPrice-size.MinPrice)

				product := models.Product{
					Name:          size.Name + " " + baseName,
					CategoryID:    category.ID,
					Price:         float64(int(price*100)) / 100,
					StockQuantity: 5 + rand.Intn(46), // 5 à 50
					Description: fmt.Sprintf("%s size %s - %s. Perfect for celebrations and festivals.",
						size.Name, baseName, category.Description),
					ImageURL: fmt.Sprintf("https://picsum.photos/800/600?random=%d",
						i*len(templates)+j),
					IsActive: true,
				}
				if err := db.Create(&product).Error; err != nil {
					return fmt.Errorf("création produit %s: %v", product.Name, err)
				}
			}
		}
	}

	log.Println("✅ Catalogue de démonstration créé")
	return nil
}

// SeedAccounts crée les comptes de base admin/staff/client.
func SeedAccounts(db *gorm.DB) error {
	accounts := []struct {
		Email    string
		Password string
		First    string
		Last     string
		Role     string
		Approved bool
	}{
		{"admin@kannancrackers.in", "admin123", "Admin", "Kannan", models.RoleAdmin, true},
		{"staff@kannancrackers.in", "staff123", "Staff", "Kannan", models.RoleStaff, true},
		{"customer@example.com", "customer123", "Ravi", "Kumar", models.RoleCustomer, true},
	}

	for _, a := range accounts {
		hash, err := utils.HashPassword(a.Password)
		if err != nil {
			return err
		}
		u := models.User{
			Email:      a.Email,
			Password:   hash,
			FirstName:  a.First,
			LastName:   a.Last,
			Role:       a.Role,
			IsApproved: a.Approved,
		}
		if err := db.Create(&u).Error; err != nil {
			return fmt.Errorf("création compte %s: %v", a.Email, err)
		}
		log.Printf("✅ Compte %s créé (%s)", a.Email, strings.ToUpper(a.Role))
	}

	return nil
}
