package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"crackers_back_end/internal/config"
	"crackers_back_end/internal/models"
)

// FormatCurrency formate un montant en roupies.
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// SendEmail envoie un e-mail HTML via le SMTP configuré.
func SendEmail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From(config.FromEmail()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order, customer models.CustomerData, items map[string]models.CartLine) string {
	itemsHTML := ""
	for _, item := range items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%s</td>
				<td>%s</td>
			</tr>`, item.Name, item.Quantity,
			FormatCurrency(item.Price),
			FormatCurrency(item.Price*float64(item.Quantity)))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande %s</h2>
		<p>Bonjour %s,</p>
		<p>Votre commande a été confirmée avec succès.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">%s</td>
				</tr>
			</tfoot>
		</table>

		<h3>Livraison</h3>
		<p>%s<br>Téléphone : %s</p>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Kannan Crackers</strong>
		</p>
	</div>
</body>
</html>`, order.Number, customer.FullName, itemsHTML,
		FormatCurrency(order.TotalAmount), customer.DeliveryAddress, customer.Phone)
}

// GenerateStockAlertHTML génère le HTML d'alerte de stock faible envoyée à l'admin
func GenerateStockAlertHTML(product models.Product) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Alerte stock faible</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #c0392b;">🚨 Stock faible : %s</h2>
		<p>Le produit suivant doit être réapprovisionné :</p>
		<ul>
			<li><strong>Produit :</strong> %s</li>
			<li><strong>Catégorie :</strong> %s</li>
			<li><strong>Stock restant :</strong> %d</li>
		</ul>
	</div>
</body>
</html>`, product.Name, product.Name, product.Category.Name, product.StockQuantity)
}

// StatusEmailSubject retourne l'objet de l'e-mail selon le nouveau statut.
func StatusEmailSubject(status string) string {
	switch status {
	case models.OrderStatusProcessing:
		return "✅ Commande en préparation - Kannan Crackers"
	case models.OrderStatusShipped:
		return "📦 Votre commande a été expédiée - Kannan Crackers"
	case models.OrderStatusDelivered:
		return "🎉 Votre commande a été livrée - Kannan Crackers"
	case models.OrderStatusCancelled:
		return "❌ Commande annulée - Kannan Crackers"
	default:
		return "📋 Mise à jour de votre commande - Kannan Crackers"
	}
}

// GenerateStatusEmailHTML génère le HTML de notification de changement de statut
func GenerateStatusEmailHTML(order models.Order, status string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Mise à jour de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Mise à jour de votre commande %s</h2>
		<p>Bonjour %s,</p>
		<p>Le statut de votre commande est passé à : <strong>%s</strong></p>
		<p>Montant total : %s</p>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Kannan Crackers</strong>
		</p>
	</div>
</body>
</html>`, order.Number, order.FullName, status, FormatCurrency(order.TotalAmount))
}
