// Package redis connects to Redis with go-redis and exposes a readiness
// probe. The toast relay in pkg/notifications publishes through the client
// returned by Connect so that every replica can reach a member's open stream.
//
//	client, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	probe := redis.Healthcheck(client)
package redis
