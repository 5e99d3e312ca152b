package models

import "time"

// Statuts de commande : pending → processing → shipped → delivered,
// cancelled possible tant que la commande n'est pas terminée.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Number string `json:"number" gorm:"uniqueIndex;not null"`
	UserID *uint  `json:"user_id,omitempty" gorm:"index"` // nullable : commande invité autorisée

	// Snapshot des coordonnées client au moment du checkout,
	// jamais relu depuis le profil.
	FullName        string `json:"full_name" gorm:"not null"`
	Email           string `json:"email" gorm:"not null"`
	Phone           string `json:"phone" gorm:"not null"`
	DeliveryAddress string `json:"delivery_address" gorm:"not null"`

	TotalAmount float64     `json:"total_amount" gorm:"not null"`
	Status      string      `json:"status" gorm:"not null;default:pending"`
	Items       []OrderItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"index;not null"`
	ProductID   uint      `json:"product_id"` // informatif, pas de FK : le produit peut être supprimé
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"` // prix unitaire figé à l'achat
	CreatedAt   time.Time `json:"created_at"`
}

// CanTransition valide une transition de statut faite par le staff/admin.
func CanTransition(from, to string) bool {
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing
	case OrderStatusProcessing:
		return to == OrderStatusShipped
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	}
	return false
}
