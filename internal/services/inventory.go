package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"crackers_back_end/internal/models"
)

// lockProduct relit le produit avec un verrou d'écriture. SELECT ... FOR UPDATE
// n'existe pas en SQLite, mais le moteur y sérialise de toute façon les
// écrivains au niveau de la base.
func lockProduct(db *gorm.DB, productID uint, dest *models.Product) error {
	q := db
	if db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q.First(dest, "id = ?", productID).Error
}

// decrementLoaded applique le décrément sur un produit déjà verrouillé par
// l'appelant. Ne laisse jamais le stock passer en négatif.
func decrementLoaded(db *gorm.DB, product *models.Product, quantity, threshold int) (newStock int, isLowStock bool, err error) {
	if quantity <= 0 {
		return 0, false, &ValidationError{Message: "La quantité doit être positive"}
	}
	if product.StockQuantity < quantity {
		return 0, false, &InsufficientStockError{
			ProductName: product.Name,
			Available:   product.StockQuantity,
			Requested:   quantity,
		}
	}

	newStock = product.StockQuantity - quantity
	if uerr := db.Model(product).Update("stock_quantity", newStock).Error; uerr != nil {
		return 0, false, uerr
	}
	product.StockQuantity = newStock

	return newStock, newStock < threshold, nil
}

// DecrementStock décrémente le stock d'un produit en relisant la valeur
// courante sous le même verrou/transaction que l'appelant. Utilisable dans
// la transaction de checkout comme en opération autonome (/update-stock).
func DecrementStock(db *gorm.DB, productID string, quantity int, threshold int) (newStock int, isLowStock bool, err error) {
	id, perr := strconv.ParseUint(productID, 10, 64)
	if perr != nil {
		return 0, false, &NotFoundError{ProductID: productID}
	}

	var product models.Product
	if ferr := lockProduct(db, uint(id), &product); ferr != nil {
		if errors.Is(ferr, gorm.ErrRecordNotFound) {
			return 0, false, &NotFoundError{ProductID: productID}
		}
		return 0, false, ferr
	}

	return decrementLoaded(db, &product, quantity, threshold)
}
