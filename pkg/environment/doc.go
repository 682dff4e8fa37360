// Package environment names the deployment stage (development, staging,
// production) read from APP_ENV. The logger uses it to pick stage defaults.
//
//	env := environment.Parse(cfg.Env)
//	log := logger.New(logger.WithEnvironment(env, "simonta-api"))
package environment
