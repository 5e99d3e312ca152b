package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"crackers_back_end/internal/database"
)

const (
	// Limites par endpoint
	CheckoutMaxRequests = 10
	APIMaxRequests      = 100

	// Fenêtres de comptage
	CheckoutWindow = 1 * time.Minute
	APIWindow      = 1 * time.Minute
)

// rateLimit limite le nombre de requêtes par IP sur une fenêtre glissante
// Redis. Sans Redis configuré, le middleware laisse tout passer.
func rateLimit(prefix string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("%s:%s", prefix, c.ClientIP())

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, window)
		}

		if count > int64(max) {
			ttl := database.Redis.TTL(ctx, key).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop de requêtes, réessayez plus tard",
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckoutRateLimit protège le checkout contre les soumissions en rafale
func CheckoutRateLimit() gin.HandlerFunc {
	return rateLimit("checkout_requests", CheckoutMaxRequests, CheckoutWindow)
}

// APIRateLimit limite les endpoints généraux
func APIRateLimit() gin.HandlerFunc {
	return rateLimit("api_requests", APIMaxRequests, APIWindow)
}
