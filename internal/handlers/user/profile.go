package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
)

// currentUser charge l'utilisateur porté par le token.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return nil, false
	}

	var u models.User
	if err := database.DB.First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return nil, false
	}
	return &u, true
}

// GetProfile retourne le profil de l'utilisateur connecté
func GetProfile(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile met à jour les champs éditables du profil.
// L'email n'est pas modifiable ici (il nécessiterait une re-vérification).
func UpdateProfile(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		PhoneNumber *string `json:"phone_number"`
		Address     *string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		u.Address = *req.Address
	}

	if err := database.DB.Save(u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour profil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profil mis à jour", "user": u})
}
