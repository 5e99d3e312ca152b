package services

import (
	"crackers_back_end/internal/models"
	"crackers_back_end/internal/utils"
)

// Notifier : collaborateur d'envoi de notifications. Les échecs sont
// attrapés et loggés par l'appelant, jamais remontés au flux de checkout.
type Notifier interface {
	SendOrderConfirmation(order models.Order, customer models.CustomerData, items map[string]models.CartLine) error
	SendStockAlert(product models.Product) error
	SendOrderStatus(order models.Order, newStatus string) error
}

// MailNotifier envoie les notifications par SMTP via go-mail.
type MailNotifier struct {
	AdminEmail string
}

func NewMailNotifier(adminEmail string) *MailNotifier {
	return &MailNotifier{AdminEmail: adminEmail}
}

func (n *MailNotifier) SendOrderConfirmation(order models.Order, customer models.CustomerData, items map[string]models.CartLine) error {
	subject := "Confirmation de commande - Kannan Crackers"
	html := utils.GenerateOrderConfirmationHTML(order, customer, items)
	return utils.SendEmail(customer.Email, subject, html)
}

func (n *MailNotifier) SendStockAlert(product models.Product) error {
	subject := "🚨 Alerte stock faible - " + product.Name
	html := utils.GenerateStockAlertHTML(product)
	return utils.SendEmail(n.AdminEmail, subject, html)
}

func (n *MailNotifier) SendOrderStatus(order models.Order, newStatus string) error {
	subject := utils.StatusEmailSubject(newStatus)
	html := utils.GenerateStatusEmailHTML(order, newStatus)
	return utils.SendEmail(order.Email, subject, html)
}
