// Package service contains the orchestration layer: the TodoService
// combines the inference boundary and the todo store into task-level
// operations. It is defined purely against those two contracts, so either
// side can be swapped (e.g. for an in-memory store or a mock inferrer)
// without touching orchestration logic.
package service
