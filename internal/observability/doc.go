// Package observability provides structured logging and Prometheus metrics
// for the journal matcher service.
//
// Logging is built on zerolog with a small set of With*Context helpers that
// attach the fields shared across the matching pipeline. Metrics follow the
// promauto registration pattern; the HTTP layer exposes them on a dedicated
// metrics port.
package observability
