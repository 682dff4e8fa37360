// Package httpserver runs the API's http.Server with graceful shutdown and
// exposes liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
//
// Run returns when ctx is cancelled, on SIGINT/SIGTERM or after Shutdown.
// In-flight requests get Config.ShutdownTimeout to finish.
//
// ReadinessHandler takes named checks such as pg.Healthcheck(pool) and
// answers 503 while any of them fails.
package httpserver
