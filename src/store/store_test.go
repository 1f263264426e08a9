package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestStore opens a throwaway SQLite database with the documents schema
// applied directly (migrations cover the same DDL in production).
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "store_test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE documents (
		collection TEXT NOT NULL,
		key        TEXT NOT NULL,
		doc        TEXT NOT NULL,
		PRIMARY KEY (collection, key)
	)`)
	if err != nil {
		t.Fatalf("creating documents table: %v", err)
	}
	return New(db)
}

func TestPutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, CollectionUsers, "U1", map[string]any{"name": "Rahul"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	raw, ok, err := s.Get(ctx, CollectionUsers, "U1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(raw) != `{"name":"Rahul"}` {
		t.Errorf("unexpected document: %s", raw)
	}

	_, ok, err = s.Get(ctx, CollectionUsers, "missing")
	if err != nil {
		t.Fatalf("Get missing: %v", err)
	}
	if ok {
		t.Error("expected missing document to report not found")
	}
}

func TestPutReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, CollectionUsers, "U1", map[string]any{"name": "Old"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, CollectionUsers, "U1", map[string]any{"name": "New"}); err != nil {
		t.Fatalf("Put replace: %v", err)
	}

	raw, _, err := s.Get(ctx, CollectionUsers, "U1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != `{"name":"New"}` {
		t.Errorf("expected replacement, got %s", raw)
	}

	docs, err := s.List(ctx, CollectionUsers)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("expected a single document after replace, got %d", len(docs))
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keys := []string{"zulu", "alpha", "mike", "bravo"}
	for _, key := range keys {
		if err := s.Put(ctx, CollectionFlagged, key, map[string]any{"Amount": 1}); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}

	docs, err := s.List(ctx, CollectionFlagged)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != len(keys) {
		t.Fatalf("expected %d documents, got %d", len(keys), len(docs))
	}
	for i, key := range keys {
		if docs[i].Key != key {
			t.Errorf("position %d: expected %s, got %s", i, key, docs[i].Key)
		}
	}
}

func TestListScopedToCollection(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, CollectionUsers, "U1", map[string]any{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, CollectionFlagged, "F1", map[string]any{}); err != nil {
		t.Fatal(err)
	}

	docs, err := s.List(ctx, CollectionUsers)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 1 || docs[0].Key != "U1" {
		t.Errorf("expected only the users collection, got %+v", docs)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, CollectionUsers, "U1", map[string]any{}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, CollectionUsers, "U1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, CollectionUsers, "U1"); ok {
		t.Error("expected document gone after delete")
	}
	if err := s.Delete(ctx, CollectionUsers, "U1"); err != nil {
		t.Errorf("deleting a missing key should not error: %v", err)
	}
}

func TestParseOrderedObject(t *testing.T) {
	entries, err := parseOrderedObject([]byte(`{"T3":1,"T1":2,"T2":3}`))
	if err != nil {
		t.Fatalf("parseOrderedObject: %v", err)
	}
	want := []string{"T3", "T1", "T2"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, key := range want {
		if entries[i].Key != key {
			t.Errorf("position %d: expected %s, got %s", i, key, entries[i].Key)
		}
	}

	entries, err = parseOrderedObject([]byte(`null`))
	if err != nil || entries != nil {
		t.Errorf("expected null to decode to empty, got %v / %v", entries, err)
	}

	if _, err := parseOrderedObject([]byte(`[1,2]`)); err == nil {
		t.Error("expected error for non-object input")
	}
}
