package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/furnikart/FurniBargain/utils"
)

const rateLimitKey = "bargain:rl:%s" // participant id

// ContributeRateLimiter throttles contribute attempts per participant using
// a Redis counter with a rolling window. A nil client disables the limiter,
// so local runs do not need Redis.
func ContributeRateLimiter(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		participantID, ok := Participant(c)
		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf(rateLimitKey, participantID)
		count, err := client.Incr(c.Request.Context(), key).Result()
		if err != nil {
			// Redis being down must not block contributions.
			utils.LogError("Rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(c.Request.Context(), key, window)
		}
		if count > int64(limit) {
			utils.LogInfo("Participant %s throttled after %d attempts", participantID, count)
			utils.TooManyRequests(c, "Too many contribution attempts, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
