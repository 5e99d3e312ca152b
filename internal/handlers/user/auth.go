package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"crackers_back_end/internal/config"
	"crackers_back_end/internal/database"
	"crackers_back_end/internal/models"
	"crackers_back_end/internal/utils"
)

// Login vérifie les identifiants et émet un JWT portant le rôle et le
// statut d'approbation — tout ce dont le gate d'accès a besoin.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email et mot de passe requis"})
		return
	}

	var u models.User
	if err := database.DB.First(&u, "email = ?", req.Email).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	ok, err := utils.VerifyPassword(req.Password, u.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	claims := jwt.MapClaims{
		"user_id":     u.ID,
		"email":       u.Email,
		"role":        u.Role,
		"is_approved": u.IsApproved,
		"exp":         time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(config.JWTSecret())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "user": u})
}
