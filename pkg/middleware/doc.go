// Package middleware provides observability for the live server: a
// Prometheus sink covering both the runtime scheduler and the session
// transport, and OpenTelemetry tracing around event dispatch.
package middleware
