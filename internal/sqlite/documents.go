package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/wanderlist/internal/docstore"
)

// DefaultPollInterval is how often watchers look for writes made by other
// processes sharing the database file.
const DefaultPollInterval = time.Second

// DocumentStore implements docstore.Store on SQLite. Each collection carries a
// revision counter bumped by every write; subscriptions re-read the
// collection whenever the counter moves.
//
// Writes made through this store reach its subscribers before the write call
// returns. A change callback must not write to the collection it watches.
type DocumentStore struct {
	db           *DB
	pollInterval time.Duration
	logger       *slog.Logger

	mu       sync.Mutex
	watchers map[string]map[*watcher]struct{}
	closed   bool
}

type watcher struct {
	collection string
	onChange   docstore.ChangeFunc
	done       chan struct{}
	stopOnce   sync.Once

	// mu serializes deliveries; revision is the last one delivered.
	mu       sync.Mutex
	revision int64
}

func (w *watcher) stop() {
	w.stopOnce.Do(func() { close(w.done) })
}

// NewDocumentStore creates a new DocumentStore. A non-positive poll interval
// uses DefaultPollInterval.
func NewDocumentStore(db *DB, pollInterval time.Duration, logger *slog.Logger) *DocumentStore {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DocumentStore{
		db:           db,
		pollInterval: pollInterval,
		logger:       logger,
		watchers:     make(map[string]map[*watcher]struct{}),
	}
}

// Subscribe starts a watcher goroutine for the collection. The first callback
// carries the current contents, even when the collection is empty.
func (s *DocumentStore) Subscribe(ctx context.Context, collection string, onChange docstore.ChangeFunc) (docstore.Unsubscribe, error) {
	if onChange == nil {
		return nil, errors.New("subscribe: nil change callback")
	}

	w := &watcher{
		collection: collection,
		onChange:   onChange,
		done:       make(chan struct{}),
		revision:   -1,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, docstore.ErrClosed
	}
	if s.watchers[collection] == nil {
		s.watchers[collection] = make(map[*watcher]struct{})
	}
	s.watchers[collection][w] = struct{}{}
	s.mu.Unlock()

	go s.watch(ctx, w)

	return func() {
		w.stop()
		s.remove(w)
	}, nil
}

func (s *DocumentStore) watch(ctx context.Context, w *watcher) {
	defer s.remove(w)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.deliver(ctx, w)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
		}
		s.deliver(ctx, w)
	}
}

// deliver reads the collection when its revision moved since the last
// callback and hands the documents to the watcher.
func (s *DocumentStore) deliver(ctx context.Context, w *watcher) {
	w.mu.Lock()
	defer w.mu.Unlock()

	rev, docs, changed, err := s.snapshot(ctx, w.collection, w.revision)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("collection read failed", "collection", w.collection, "error", err)
		}
		return
	}
	if !changed {
		return
	}
	select {
	case <-w.done:
		return
	default:
	}
	w.revision = rev
	w.onChange(docs)
}

func (s *DocumentStore) snapshot(ctx context.Context, collection string, since int64) (int64, []docstore.Document, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var rev int64
	err = tx.QueryRowContext(ctx, `SELECT revision FROM collections WHERE name = ?`, collection).Scan(&rev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, nil, false, fmt.Errorf("failed to read revision: %w", err)
	}
	if rev == since {
		return rev, nil, false, nil
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, data, revision FROM documents WHERE collection = ? ORDER BY created_at, id`,
		collection)
	if err != nil {
		return 0, nil, false, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []docstore.Document{}
	for rows.Next() {
		var (
			doc  docstore.Document
			data string
		)
		if err := rows.Scan(&doc.ID, &data, &doc.Revision); err != nil {
			return 0, nil, false, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Data = json.RawMessage(data)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, false, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return rev, docs, true, nil
}

func (s *DocumentStore) remove(w *watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set := s.watchers[w.collection]; set != nil {
		delete(set, w)
		if len(set) == 0 {
			delete(s.watchers, w.collection)
		}
	}
}

// notify delivers the collection to its in-process watchers.
func (s *DocumentStore) notify(ctx context.Context, collection string) {
	s.mu.Lock()
	watchers := make([]*watcher, 0, len(s.watchers[collection]))
	for w := range s.watchers[collection] {
		watchers = append(watchers, w)
	}
	s.mu.Unlock()

	for _, w := range watchers {
		s.deliver(ctx, w)
	}
}

// Close stops every watcher. Writes still work; new subscriptions fail.
func (s *DocumentStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for _, set := range s.watchers {
		for w := range set {
			w.stop()
		}
	}
	s.watchers = make(map[string]map[*watcher]struct{})
}

// Get fetches one document.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	var (
		doc  docstore.Document
		data string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, data, revision FROM documents WHERE collection = ? AND id = ?`,
		collection, id).Scan(&doc.ID, &data, &doc.Revision)
	if errors.Is(err, sql.ErrNoRows) {
		return docstore.Document{}, docstore.ErrNotFound
	}
	if err != nil {
		return docstore.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	doc.Data = json.RawMessage(data)
	return doc, nil
}

// Add stores doc under a new id.
func (s *DocumentStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	id := uuid.NewString()
	if err := s.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

// Set writes the whole document.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	return s.write(ctx, collection, func(tx *sql.Tx, rev int64) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO documents (collection, id, data, revision)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (collection, id) DO UPDATE
			SET data = excluded.data, revision = excluded.revision, updated_at = CURRENT_TIMESTAMP
		`, collection, id, string(data), rev)
		if err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		return nil
	})
}

// Update replaces the given top-level fields and keeps the rest.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return s.write(ctx, collection, func(tx *sql.Tx, rev int64) error {
		var data string
		err := tx.QueryRowContext(ctx,
			`SELECT data FROM documents WHERE collection = ? AND id = ?`,
			collection, id).Scan(&data)
		if errors.Is(err, sql.ErrNoRows) {
			return docstore.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read document: %w", err)
		}

		merged := map[string]json.RawMessage{}
		if err := json.Unmarshal([]byte(data), &merged); err != nil {
			return fmt.Errorf("failed to decode document: %w", err)
		}
		for k, v := range fields {
			raw, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to encode field %s: %w", k, err)
			}
			merged[k] = raw
		}
		out, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("failed to encode document: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE documents
			SET data = ?, revision = ?, updated_at = CURRENT_TIMESTAMP
			WHERE collection = ? AND id = ?
		`, string(out), rev, collection, id)
		if err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		return nil
	})
}

// Delete removes a document. Deleting a missing document is not an error.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	return s.write(ctx, collection, func(tx *sql.Tx, _ int64) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
		if err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		return nil
	})
}

// write runs fn in a transaction after bumping the collection revision, then
// delivers the new contents to the collection's watchers.
func (s *DocumentStore) write(ctx context.Context, collection string, fn func(tx *sql.Tx, rev int64) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rev, err := bumpRevision(ctx, tx, collection)
	if err != nil {
		return err
	}
	if err := fn(tx, rev); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.notify(ctx, collection)
	return nil
}

func bumpRevision(ctx context.Context, tx *sql.Tx, collection string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO collections (name, revision) VALUES (?, 0)`, collection); err != nil {
		return 0, fmt.Errorf("failed to register collection: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE collections SET revision = revision + 1 WHERE name = ?`, collection); err != nil {
		return 0, fmt.Errorf("failed to bump revision: %w", err)
	}

	var rev int64
	if err := tx.QueryRowContext(ctx,
		`SELECT revision FROM collections WHERE name = ?`, collection).Scan(&rev); err != nil {
		return 0, fmt.Errorf("failed to read revision: %w", err)
	}
	return rev, nil
}
