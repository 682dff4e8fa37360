// Package requestid tags every HTTP request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// mints a time-ordered UUIDv7, echoes it in the response and stores it in the
// request context. LoggerExtractor adds it to every log record written with
// that context.
package requestid
