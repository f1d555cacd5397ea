// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It adapts HTTP concerns to the application
// services; domain errors are mapped to response statuses here and nowhere
// else.
package api
