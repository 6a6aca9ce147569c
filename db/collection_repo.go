package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/aura-hub/aurahub/domain"
)

var _ domain.CollectionStore = (*Repository)(nil)

// Load implements domain.CollectionStore. A key with no stored document
// yields (nil, nil), matching the missing-collection contract.
func (repo *Repository) Load(key string) ([]byte, error) {
	var document string
	query := `SELECT document FROM collection WHERE key = ?`

	err := repo.dbConn.Get(&document, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading collection %s : %w", key, err)
	}

	return []byte(document), nil
}

// Save implements domain.CollectionStore. The document is replaced wholesale.
func (repo *Repository) Save(key string, data []byte) error {
	query := `INSERT INTO collection(key, document, updated_at)
	          VALUES (?, ?, CURRENT_TIMESTAMP)
	          ON CONFLICT(key) DO UPDATE SET document=excluded.document, updated_at=excluded.updated_at`

	_, err := repo.dbConn.Exec(query, key, string(data))
	if err != nil {
		return fmt.Errorf("saving collection %s : %w", key, err)
	}

	return nil
}

// Keys returns the names of all stored collections.
func (repo *Repository) Keys() ([]string, error) {
	var keys []string
	query := `SELECT key FROM collection ORDER BY key`

	err := repo.dbConn.Select(&keys, query)
	if err != nil {
		return nil, fmt.Errorf("listing collections : %w", err)
	}

	return keys, nil
}
