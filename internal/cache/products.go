package cache

import (
	"context"
	"encoding/json"
	"time"

	"crackers_back_end/internal/database"
)

const (
	ProductCacheTTL = 10 * time.Minute

	ProductsCacheKey   = "products:all"
	CategoriesCacheKey = "categories:all"
)

// Get récupère une valeur JSON depuis Redis. Retourne false si Redis n'est
// pas configuré, si la clé manque ou si le décodage échoue.
func Get(key string, dest interface{}) bool {
	if database.Redis == nil {
		return false
	}

	data, err := database.Redis.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(data), dest) == nil
}

// Set met une valeur JSON en cache. Best-effort : les erreurs sont ignorées.
func Set(key string, value interface{}, ttl time.Duration) {
	if database.Redis == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	database.Redis.Set(context.Background(), key, data, ttl)
}

// InvalidateCatalog invalide le cache produits/catégories après une écriture.
func InvalidateCatalog() {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(context.Background(), ProductsCacheKey, CategoriesCacheKey)
}
