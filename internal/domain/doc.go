// Package domain defines the core business entities and errors.
//
// Entities are plain records owned by the storage layer for their persisted
// lifetime. They carry no persistence logic; the store interfaces in
// internal/store define how they are read and written.
package domain
