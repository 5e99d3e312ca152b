package services

import "fmt"

// ValidationError : entrée incomplète ou invalide, aucune mutation effectuée.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError : produit référencé par le panier introuvable.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("produit introuvable: %s", e.ProductID)
}

// InsufficientStockError : stock insuffisant pour une ligne du panier.
// La transaction entière est annulée.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant pour %s (disponible: %d, demandé: %d)",
		e.ProductName, e.Available, e.Requested)
}
