// Package redis connects go-redis clients with retry and exposes a health check.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL: "redis://localhost:6379/0",
//		RetryAttempts: 3,
//		RetryInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	ready := redis.Healthcheck(client)
//
// Connect accepts redis:// and rediss:// URLs and retries the initial ping
// with exponential backoff. Errors wrap ErrEmptyConnectionURL,
// ErrFailedToParseRedisConnString or ErrRedisNotReady; the health check wraps
// ErrHealthcheckFailed.
//
// The session redisstore package builds on the returned client.
package redis
