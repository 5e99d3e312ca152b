package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/models"
)

// RequireAdmin vérifie que l'utilisateur a le rôle "admin"
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireStaff accepte le staff et les administrateurs
func RequireStaff(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || (role != models.RoleStaff && role != models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé au personnel"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireApprovedCustomer exige un client approuvé (ou staff/admin).
// Un client non approuvé voit ses accès refusés tant qu'un admin ne l'a
// pas validé.
func RequireApprovedCustomer(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		c.Abort()
		return
	}
	if role == models.RoleAdmin || role == models.RoleStaff {
		c.Next()
		return
	}
	if approved, _ := c.Get("is_approved"); approved != true {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte en attente d'approbation"})
		c.Abort()
		return
	}
	c.Next()
}
