package cache

import (
	"fmt"
	"time"
)

// RateLimitKey returns the fixed-window counter key for client in the minute containing now.
func RateLimitKey(client string, now time.Time) string {
	return fmt.Sprintf("jobtrail:ratelimit:%s:%d", client, now.Unix()/60)
}
