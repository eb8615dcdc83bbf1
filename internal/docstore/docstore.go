// Package docstore defines the document store port: named collections of JSON
// documents with live per-collection subscriptions.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names.
const (
	Trips = "trips"
	Users = "users"
)

var (
	// ErrNotFound indicates the document doesn't exist.
	ErrNotFound = errors.New("document not found")
	// ErrClosed indicates the store has been closed.
	ErrClosed = errors.New("document store closed")
)

// Document is one stored JSON document.
type Document struct {
	ID       string          `json:"id"`
	Data     json.RawMessage `json:"data"`
	Revision int64           `json:"revision"`
}

// Decode unmarshals the document payload into v.
func (d Document) Decode(v any) error {
	return json.Unmarshal(d.Data, v)
}

// ChangeFunc receives every document of a collection after each change.
type ChangeFunc func(docs []Document)

// Unsubscribe stops a subscription. It is safe to call more than once.
type Unsubscribe func()

// Store is a multi-reader, multi-writer document database.
type Store interface {
	// Subscribe calls onChange with the full collection once, then again after
	// every change until the returned Unsubscribe is called.
	Subscribe(ctx context.Context, collection string, onChange ChangeFunc) (Unsubscribe, error)
	Get(ctx context.Context, collection, id string) (Document, error)
	// Add stores a new document and returns its assigned id.
	Add(ctx context.Context, collection string, doc any) (string, error)
	// Set writes the whole document, creating it when missing.
	Set(ctx context.Context, collection, id string, doc any) error
	// Update merges top-level fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
}
