// Package redisstore implements session.Store on Redis using go-redis.
//
// Each session is one string key, "<prefix><id>", holding the record encoded
// with session.MarshalRecord. The key TTL follows Record.ExpiresAt, so expired
// sessions disappear without a cleanup job.
//
//	client, err := redisstore.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redisstore.NewFromConfig(client, cfg)
package redisstore
