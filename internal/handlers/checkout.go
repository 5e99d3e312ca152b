package handlers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
	"crackers_back_end/internal/services"
	"gorm.io/gorm"
)

func idToString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		// Un id JSON arrive en float64 : seules les valeurs entières
		// positives sont des ids valides.
		if id < 0 || id != math.Trunc(id) {
			return ""
		}
		return strconv.FormatUint(uint64(id), 10)
	default:
		return ""
	}
}

// Checkout traite une commande complète : validation du panier contre le
// stock courant, création transactionnelle de la commande, décrément des
// stocks, puis notifications post-commit.
func Checkout(svc *services.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request data"})
			return
		}

		// Identité optionnelle : la commande invité est autorisée
		var actingUser *models.User
		if userID, exists := c.Get("user_id"); exists {
			if u, err := svc.UserByID(userID); err == nil {
				actingUser = u
			}
		}

		summary, err := svc.Checkout(req.CustomerData, req.CartItems, actingUser)
		if err != nil {
			status, msg := checkoutErrorResponse(err)
			c.JSON(status, gin.H{"success": false, "error": msg})
			return
		}

		log.Printf("✅ Commande %s créée (%d articles, total %.2f)",
			summary.OrderNumber, len(summary.Items), summary.Total)

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "Order placed successfully!",
			"orderSummary": summary,
		})
	}
}

// checkoutErrorResponse mappe la taxonomie d'erreurs du checkout vers HTTP.
func checkoutErrorResponse(err error) (int, string) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var stockErr *services.InsufficientStockError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &stockErr):
		return http.StatusBadRequest, stockErr.Error()
	default:
		log.Printf("❌ Erreur checkout inattendue: %v", err)
		return http.StatusInternalServerError, "Erreur serveur"
	}
}

// UpdateStock : décrément de stock autonome (ajustement manuel par le staff).
// Même contrat de ledger que le checkout, dans sa propre transaction.
func UpdateStock(lowStockThreshold int) gin.HandlerFunc {
	return func(c *gin.Context) {
		// product_id accepté en nombre ou en chaîne, comme côté front
		var req struct {
			ProductID interface{} `json:"product_id"`
			Quantity  int         `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}
		productID := idToString(req.ProductID)
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			return
		}

		var newStock int
		var isLow bool
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var derr error
			newStock, isLow, derr = services.DecrementStock(tx, productID, req.Quantity, lowStockThreshold)
			return derr
		})
		if err != nil {
			var stockErr *services.InsufficientStockError
			var notFoundErr *services.NotFoundError
			switch {
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Not enough stock available"})
			case errors.As(err, &notFoundErr):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Invalid request"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"new_stock":    newStock,
			"is_low_stock": isLow,
		})
	}
}
