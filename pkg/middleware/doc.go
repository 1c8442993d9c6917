// Package middleware provides observability wrappers for interaction
// handlers: Prometheus metrics and OpenTelemetry tracing.
//
// Both wrappers take and return a messenger.Handler, so they compose
// around a paginator's handler or around a whole Dispatcher:
//
//	d.RegisterInteractionHandler(sessionID, roles,
//	    middleware.Prometheus(
//	        middleware.OpenTelemetry(handler),
//	    ),
//	)
//
// The tracer uses the global OpenTelemetry tracer provider; configure
// it in your main() before wiring handlers.
package middleware
