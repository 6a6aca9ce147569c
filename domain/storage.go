package domain

// CollectionStore defines the interface for persisting named entity
// collections. Each collection is read and written wholesale as a single
// JSON-encoded document; there are no partial writes.
//
// Implementations exist for SQLite (db package), plain files (filestore
// package) and memory (memstore package), so the same merge and accessor
// logic can run against any of them without changing the data-access contract.
type CollectionStore interface {
	// Load reads the named collection. A missing key yields (nil, nil),
	// not an error.
	Load(key string) ([]byte, error)

	// Save overwrites the named collection wholesale.
	Save(key string, data []byte) error
}
