// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (message.go, stores.go,
// platform.go) with shared types and cross-cutting interfaces. No
// implementation code - just contracts. Prevents circular imports by
// keeping interfaces on the consumer side where practical and shared
// collaborator contracts here.
package domain
