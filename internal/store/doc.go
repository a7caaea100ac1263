// Package store defines the persistence interface for todo records along
// with the sentinel errors shared by its implementations. The interface
// keeps the rest of the application independent of the backing store, so
// the PostgreSQL implementation and the in-memory one are interchangeable.
package store
