package middleware

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

const cachePrefix = "cache:"

// Cache serves GET responses from Redis keyed by URL, with a fixed
// expiry. Writes do not invalidate automatically; write routes must be
// wrapped with InvalidateCache. A nil client disables caching entirely.
func Cache(rdb *redis.Client, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil || c.Method() != fiber.MethodGet {
			return c.Next()
		}

		key := cachePrefix + c.OriginalURL()
		ctx := c.UserContext()

		if cached, err := rdb.Get(ctx, key).Bytes(); err == nil {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(cached)
		}

		if err := c.Next(); err != nil {
			return err
		}

		if c.Response().StatusCode() == fiber.StatusOK {
			body := make([]byte, len(c.Response().Body()))
			copy(body, c.Response().Body())
			rdb.Set(ctx, key, body, ttl)
		}
		return nil
	}
}

// InvalidateCache drops cached entries matching the given URL patterns
// after the wrapped write handler succeeds.
func InvalidateCache(rdb *redis.Client, patterns ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			return err
		}
		if rdb == nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}

		ctx := c.UserContext()
		for _, pattern := range patterns {
			keys, err := rdb.Keys(ctx, cachePrefix+pattern).Result()
			if err != nil || len(keys) == 0 {
				continue
			}
			rdb.Del(ctx, keys...)
		}
		return nil
	}
}
