// Package store defines the persistence contracts for the application.
//
// Each entity store composes the small generic capability interfaces
// (Creator, Getter, Updater, Deleter) and adds entity-specific read shaping
// such as lookups by email or bulk operations per user. Implementations live
// under internal/platform; storage-layer failures never cross this boundary
// raw, they are translated into the sentinel errors declared here.
//
// Absence of a row is a normal result, not an error: point lookups and
// predicate-gated updates return a nil entity with a nil error when nothing
// matches, and list operations return empty slices.
package store
