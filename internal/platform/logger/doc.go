// Package logger configures the application's structured logging and
// propagates the request-scoped logger through context.
package logger
