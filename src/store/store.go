// Package store is the document-store boundary: a small key/collection
// store backed by SQLite, plus the adapter that normalizes raw documents
// into the canonical model. The two parallel field-naming conventions found
// in the source data are resolved here, immediately on load, so nothing
// downstream ever branches on field-name variants.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Collection names used by the dashboard.
const (
	CollectionUsers   = "users"
	CollectionFlagged = "flagged_transactions"
)

// Document is one raw record of a collection, in insertion order.
type Document struct {
	Key string
	Doc json.RawMessage
}

// Store is an explicitly constructed handle over the documents table. The
// caller owns the underlying *sql.DB and its lifecycle.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Put inserts or replaces a document. The value is marshaled to JSON.
func (s *Store) Put(ctx context.Context, collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document %s/%s: %w", collection, key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, key, doc) VALUES (?, ?, ?)
		 ON CONFLICT (collection, key) DO UPDATE SET doc = excluded.doc`,
		collection, key, string(data))
	if err != nil {
		return fmt.Errorf("storing document %s/%s: %w", collection, key, err)
	}
	return nil
}

// Get fetches one document by key. The second return value reports whether
// the document exists.
func (s *Store) Get(ctx context.Context, collection, key string) (json.RawMessage, bool, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM documents WHERE collection = ? AND key = ?`,
		collection, key).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("fetching document %s/%s: %w", collection, key, err)
	}
	return json.RawMessage(doc), true, nil
}

// List returns every document of a collection in insertion order. Scans over
// this ordering are what the reconciler's last-match-wins policy is defined
// against.
func (s *Store) List(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, doc FROM documents WHERE collection = ? ORDER BY rowid`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("listing collection %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var key, doc string
		if err := rows.Scan(&key, &doc); err != nil {
			return nil, fmt.Errorf("scanning collection %s: %w", collection, err)
		}
		docs = append(docs, Document{Key: key, Doc: json.RawMessage(doc)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collection %s: %w", collection, err)
	}
	return docs, nil
}

// Delete removes a document; deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND key = ?`, collection, key); err != nil {
		return fmt.Errorf("deleting document %s/%s: %w", collection, key, err)
	}
	return nil
}
