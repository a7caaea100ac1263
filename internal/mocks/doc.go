// Package mocks provides hand-written test doubles for the store and
// inference interfaces. Each mock offers per-method function fields for
// custom behavior and a reasonable map-backed or fixed-value default when
// no function is set.
package mocks
