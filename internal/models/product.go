package models

import "time"

type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" gorm:"not null"`
	StockQuantity int       `json:"stock_quantity" gorm:"not null;default:0"`
	CategoryID    uint      `json:"category_id"`
	Category      Category  `json:"category,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsActive      bool      `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsLowStock indique si le produit passe sous le seuil de réapprovisionnement
func (p Product) IsLowStock(threshold int) bool {
	return p.StockQuantity < threshold
}
