// Package clientip resolves the originating client address of a request.
//
// Proxy headers are only honoured when configured: a service exposed
// directly must not trust X-Forwarded-For, while one behind a load balancer
// should. The first header in the trusted list that holds a valid address
// wins; RemoteAddr is the fallback.
//
//	res := clientip.New(clientip.WithTrustedHeaders("X-Forwarded-For"))
//	r.Use(res.Middleware)
//	ip := clientip.FromContext(ctx)
package clientip
