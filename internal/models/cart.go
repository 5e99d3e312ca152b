package models

// CustomerData : coordonnées saisies au checkout. Tous les champs sauf
// UpdateProfile sont obligatoires.
type CustomerData struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	DeliveryAddress string `json:"deliveryAddress"`
	UpdateProfile   bool   `json:"updateProfile,omitempty"`
}

// CartLine : une ligne du panier transmise par le client,
// indexée par l'identifiant produit dans CheckoutRequest.CartItems.
type CartLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerData CustomerData        `json:"customerData"`
	CartItems    map[string]CartLine `json:"cartItems"`
}

// OrderSummary : récapitulatif renvoyé au client après un checkout réussi.
type OrderSummary struct {
	OrderID     uint                `json:"order_id"`
	OrderNumber string              `json:"order_number"`
	Customer    CustomerData        `json:"customer"`
	Items       map[string]CartLine `json:"items"`
	Total       float64             `json:"total"`
}
