// Package redis connects the service to Redis through go-redis.
//
// The only consumer is the lookup cache in pkg/lookups, which remembers
// positive existence answers for reference tables. Redis is optional: when
// Config.ConnectionURL is empty the cache is simply not wired.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	    checks = append(checks, httpserver.Check{Name: "redis", Run: redis.Healthcheck(client)})
//	}
//
// Errors are sentinel values joined with the underlying go-redis error, so
// errors.Is works on both.
package redis
