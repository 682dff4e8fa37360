// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped values (request id, actor, environment) into every
// record through ContextExtractor callbacks.
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "simonta-api"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor(), rbac.LoggerExtractor()),
//	)
//
//	log.InfoContext(ctx, "operation completed",
//	    logger.Operation("register"),
//	    logger.Outcome("invalid"),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages.
// Helpers return an empty Attr for nil or empty values, which slog drops.
package logger
