package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttlePrefix = "lead:last:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// MarkSubmission records a submission for key and reports whether it was the
// first one inside the window. A false return means the client submitted
// again too quickly.
func MarkSubmission(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (bool, error) {
	return rdb.SetNX(ctx, throttlePrefix+key, time.Now().Unix(), window).Result()
}
