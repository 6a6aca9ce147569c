// Package domain defines the core data structures of the Aura Hub marketplace.
// It contains the primary domain models, such as Vendor, Product, and Order,
// as well as the CollectionStore interface that defines the contract for
// persisting entity collections.
//
// This package serves as the central point for application-wide types and business rules,
// ensuring a clean separation between the marketplace's core logic and its implementation
// details, such as the storage backend, HTTP surface, or external AI services. By defining
// the persistence capability as an interface, the domain package remains independent of
// the storage technology.
package domain
