package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects and verifies the connection before handing the client
// out; the idempotency middleware refuses to run without a reachable store.
func OpenRedis(addr, password string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		_ = r.Close()
		return nil, err
	}
	return r, nil
}
