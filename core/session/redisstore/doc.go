// Package redisstore implements session.Store and session.Saver on Redis.
//
//	client, err := redis.Connect(ctx, redisCfg)
//	store := redisstore.New(client, redisstore.WithTTL(24*time.Hour))
//	mux := router.New(router.WithSessionStore(store))
package redisstore
