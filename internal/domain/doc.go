// Package domain contains the core business entities and domain logic of
// the application: the Todo record, its status and priority enumerations
// with their storage codes, and the partial-update patch. It is independent
// of any specific infrastructure or delivery mechanism.
package domain
