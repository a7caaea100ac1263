// Package postgres provides the PostgreSQL implementation of the store
// interfaces, including the mapping of driver-level errors to the store's
// sentinel errors.
package postgres
