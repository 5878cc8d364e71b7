// Package httpserver wraps http.Server with address validation and
// context-driven graceful shutdown.
package httpserver
