package productcontroller

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/solestride/storefront-api/models"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const productCacheTTL = 5 * time.Minute

// Cache keeps hot product reads off Postgres. Concurrent fills for the
// same product collapse into a single query via singleflight. A nil redis
// client degrades to plain database reads.
type Cache struct {
	redis *redis.Client
	group singleflight.Group
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{redis: client}
}

func (c *Cache) GetProduct(ctx context.Context, db *gorm.DB, id uint) (*models.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	if c.redis != nil {
		cached, err := c.redis.Get(ctx, key).Result()
		if err == nil {
			var p models.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		var p models.Product
		if err := db.Preload("Variants").First(&p, "id = ?", id).Error; err != nil {
			return nil, err
		}
		if c.redis != nil {
			if data, err := json.Marshal(p); err == nil {
				c.redis.Set(ctx, key, data, productCacheTTL)
			}
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

// Invalidate drops a product from the cache after an admin mutation.
func (c *Cache) Invalidate(ctx context.Context, id uint) {
	if c.redis != nil {
		c.redis.Del(ctx, fmt.Sprintf("product:%d", id))
	}
}
