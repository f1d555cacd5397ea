// Package postgres implements the store interfaces against PostgreSQL.
//
// All driver-level failures pass through MapError before leaving the
// package, so callers only ever see the sentinel errors declared in
// internal/store. The generic crud helper carries the capability operations
// (point get, conditional update, delete) shared by every entity store.
package postgres
