package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/heptiolabs/healthcheck"
	"github.com/redis/go-redis/v9"
)

const (
	goroutineThreshold = 10000
	probeTimeout       = time.Second
)

// NewProbes builds the /live and /ready handler. db and redisClient may be nil.
func NewProbes(db *sql.DB, redisClient *redis.Client) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(goroutineThreshold))

	if db != nil {
		health.AddReadinessCheck("database", healthcheck.DatabasePingCheck(db, probeTimeout))
	}
	if redisClient != nil {
		health.AddReadinessCheck("redis", redisPingCheck(redisClient))
	}
	return health
}

func redisPingCheck(client *redis.Client) healthcheck.Check {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}
}
