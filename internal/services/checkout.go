package services

import (
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"crackers_back_end/internal/models"
)

// Types de hooks post-commit. Un hook est enregistré pendant la transaction
// mais exécuté seulement après le commit durable.
const (
	hookKindConfirmation = "order_confirmation"
	hookKindStockAlert   = "stock_alert"
)

type postCommitHook struct {
	kind string
	key  string // clé de déduplication (kind + produit)
	run  func() error
}

// CheckoutService orchestre le checkout : validation, transaction atomique
// commande + lignes + stock, puis notifications hors transaction.
// Le seuil de stock faible et le notifier sont injectés, pas lus en global.
type CheckoutService struct {
	db                *gorm.DB
	notifier          Notifier
	lowStockThreshold int
}

func NewCheckoutService(db *gorm.DB, notifier Notifier, lowStockThreshold int) *CheckoutService {
	return &CheckoutService{
		db:                db,
		notifier:          notifier,
		lowStockThreshold: lowStockThreshold,
	}
}

// Checkout valide le panier contre le stock courant, crée la commande et ses
// lignes, décrémente les stocks — tout ou rien — puis déclenche les
// notifications après commit. Un échec de notification ne remet jamais en
// cause une commande déjà committée.
func (s *CheckoutService) Checkout(customer models.CustomerData, cart map[string]models.CartLine, actingUser *models.User) (*models.OrderSummary, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, &ValidationError{Message: "Le panier est vide"}
	}

	// Mise à jour du profil AVANT la transaction : best-effort, jamais
	// annulée si le checkout échoue ensuite.
	if actingUser != nil && customer.UpdateProfile {
		s.updateProfile(actingUser, customer)
	}

	var order models.Order
	var hooks []postCommitHook

	err := s.db.Transaction(func(tx *gorm.DB) error {
		total := 0.0
		for _, line := range cart {
			total += line.Price * float64(line.Quantity)
		}

		order = models.Order{
			Number:          uuid.NewString(),
			FullName:        customer.FullName,
			Email:           customer.Email,
			Phone:           customer.Phone,
			DeliveryAddress: customer.DeliveryAddress,
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
		}
		if actingUser != nil {
			order.UserID = &actingUser.ID
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Ordre déterministe sur les identifiants produit : verrous
		// toujours pris dans le même ordre entre checkouts concurrents.
		for _, productID := range sortedCartIDs(cart) {
			line := cart[productID]

			id, perr := strconv.ParseUint(productID, 10, 64)
			if perr != nil {
				return &NotFoundError{ProductID: productID}
			}

			// Relecture du stock persisté sous verrou — on ne fait
			// jamais confiance au snapshot envoyé par le client.
			var product models.Product
			if ferr := lockProduct(tx, uint(id), &product); ferr != nil {
				if errors.Is(ferr, gorm.ErrRecordNotFound) {
					return &NotFoundError{ProductID: productID}
				}
				return ferr
			}

			item := models.OrderItem{
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Price:       line.Price, // prix unitaire figé à l'achat
			}
			if ierr := tx.Create(&item).Error; ierr != nil {
				return ierr
			}

			_, isLow, derr := decrementLoaded(tx, &product, line.Quantity, s.lowStockThreshold)
			if derr != nil {
				return derr
			}

			if isLow {
				// L'alerte mentionne la catégorie, que la relecture sous
				// verrou ne charge pas : résolue ici, dans la transaction.
				p := product
				if cerr := tx.First(&p.Category, "id = ?", p.CategoryID).Error; cerr != nil {
					log.Printf("⚠️ Catégorie introuvable pour l'alerte stock de %s: %v", p.Name, cerr)
				}
				hooks = registerHook(hooks, postCommitHook{
					kind: hookKindStockAlert,
					key:  hookKindStockAlert + ":" + productID,
					run:  func() error { return s.notifier.SendStockAlert(p) },
				})
			}
		}

		hooks = registerHook(hooks, postCommitHook{
			kind: hookKindConfirmation,
			key:  hookKindConfirmation,
			run: func() error {
				return s.notifier.SendOrderConfirmation(order, customer, cart)
			},
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	// La transaction est durable : les hooks s'exécutent dans l'ordre
	// d'enregistrement, leurs échecs sont loggés et avalés.
	s.runHooks(order, hooks)

	return &models.OrderSummary{
		OrderID:     order.ID,
		OrderNumber: order.Number,
		Customer:    customer,
		Items:       cart,
		Total:       order.TotalAmount,
	}, nil
}

// UserByID charge l'utilisateur porté par le token, sur la même base que le
// reste du service.
func (s *CheckoutService) UserByID(id interface{}) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func validateCustomer(customer models.CustomerData) error {
	missing := func(v string) bool { return strings.TrimSpace(v) == "" }
	if missing(customer.FullName) || missing(customer.Email) ||
		missing(customer.Phone) || missing(customer.DeliveryAddress) {
		return &ValidationError{Message: "Veuillez remplir tous les champs obligatoires"}
	}
	return nil
}

// updateProfile synchronise le profil du client connecté avec les
// coordonnées du checkout. L'email n'est pas touché (il nécessiterait une
// re-vérification).
func (s *CheckoutService) updateProfile(user *models.User, customer models.CustomerData) {
	parts := strings.SplitN(strings.TrimSpace(customer.FullName), " ", 2)
	user.FirstName = parts[0]
	if len(parts) > 1 {
		user.LastName = parts[1]
	} else {
		user.LastName = ""
	}
	user.PhoneNumber = customer.Phone
	user.Address = customer.DeliveryAddress

	if err := s.db.Save(user).Error; err != nil {
		log.Printf("⚠️ Échec mise à jour profil utilisateur %d: %v", user.ID, err)
	}
}

// registerHook ajoute un hook en dédupliquant sur sa clé : une seule alerte
// de stock par produit et une seule confirmation par commande.
func registerHook(hooks []postCommitHook, h postCommitHook) []postCommitHook {
	for _, existing := range hooks {
		if existing.key == h.key {
			return hooks
		}
	}
	return append(hooks, h)
}

func (s *CheckoutService) runHooks(order models.Order, hooks []postCommitHook) {
	for _, h := range hooks {
		if err := h.run(); err != nil {
			log.Printf("⚠️ Hook post-commit %s échoué pour commande %d: %v", h.kind, order.ID, err)
		}
	}
}

func sortedCartIDs(cart map[string]models.CartLine) []string {
	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.ParseUint(ids[i], 10, 64)
		b, berr := strconv.ParseUint(ids[j], 10, 64)
		if aerr == nil && berr == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}
