// Package state mirrors document store collections in memory and fans
// changes out to listeners.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/domain/user"
)

// Cache holds the latest snapshot of each subscribed collection. The trips
// and users collections are pinned between Start and Close; other collections
// are watched only while they have listeners.
type Cache struct {
	store  docstore.Store
	logger *slog.Logger

	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	collections map[string]*collection
	nextID      int
	pinned      []func()

	trips []trip.Trip
	users []user.User
}

type collection struct {
	// deliver serializes callbacks so each listener sees snapshots in order.
	deliver     sync.Mutex
	ready       bool
	readyCh     chan struct{}
	docs        []docstore.Document
	listeners   map[int]docstore.ChangeFunc
	order       []int
	unsubscribe docstore.Unsubscribe
}

// New creates a cache over store. A nil store yields a cache that never
// becomes ready.
func New(store docstore.Store, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		store:       store,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		collections: make(map[string]*collection),
	}
}

// Available reports whether a document store is configured.
func (c *Cache) Available() bool {
	return c.store != nil
}

// Start pins the trips and users collections.
func (c *Cache) Start(ctx context.Context) error {
	for _, name := range []string{docstore.Trips, docstore.Users} {
		unsubscribe, err := c.Subscribe(name, func([]docstore.Document) {})
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.pinned = append(c.pinned, unsubscribe)
		c.mu.Unlock()
	}
	return nil
}

// Close drops every subscription.
func (c *Cache) Close() {
	c.mu.Lock()
	pinned := c.pinned
	c.pinned = nil
	c.mu.Unlock()

	for _, unsubscribe := range pinned {
		unsubscribe()
	}
	c.cancel()
}

// Subscribe registers onChange for a collection. When a snapshot is already
// cached onChange is called with it before Subscribe returns. The returned
// func removes the listener; the last listener to leave releases the store
// subscription.
func (c *Cache) Subscribe(name string, onChange docstore.ChangeFunc) (docstore.Unsubscribe, error) {
	if c.store == nil {
		c.logger.Debug("subscribe without document store", "collection", name)
		return func() {}, nil
	}

	c.mu.Lock()
	col := c.collections[name]
	opened := false
	if col == nil {
		col = &collection{
			listeners: make(map[int]docstore.ChangeFunc),
			readyCh:   make(chan struct{}),
		}
		c.collections[name] = col
		opened = true
	}
	id := c.nextID
	c.nextID++
	col.listeners[id] = onChange
	col.order = append(col.order, id)
	c.mu.Unlock()

	if opened {
		unsubscribe, err := c.store.Subscribe(c.ctx, name, func(docs []docstore.Document) {
			c.apply(name, col, docs)
		})
		if err != nil {
			c.mu.Lock()
			delete(c.collections, name)
			c.mu.Unlock()
			return nil, err
		}
		c.mu.Lock()
		col.unsubscribe = unsubscribe
		c.mu.Unlock()
	} else {
		col.deliver.Lock()
		c.mu.RLock()
		ready, docs := col.ready, col.docs
		c.mu.RUnlock()
		if ready {
			onChange(docs)
		}
		col.deliver.Unlock()
	}

	var once sync.Once
	return func() {
		once.Do(func() { c.release(name, col, id) })
	}, nil
}

func (c *Cache) release(name string, col *collection, id int) {
	c.mu.Lock()
	delete(col.listeners, id)
	col.order = slices.DeleteFunc(col.order, func(x int) bool { return x == id })
	var unsubscribe docstore.Unsubscribe
	if len(col.listeners) == 0 {
		unsubscribe = col.unsubscribe
		if c.collections[name] == col {
			delete(c.collections, name)
		}
	}
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (c *Cache) apply(name string, col *collection, docs []docstore.Document) {
	col.deliver.Lock()
	defer col.deliver.Unlock()

	c.mu.Lock()
	if !col.ready {
		close(col.readyCh)
	}
	col.ready = true
	col.docs = docs
	switch name {
	case docstore.Trips:
		c.trips = c.decodeTrips(docs)
	case docstore.Users:
		c.users = c.decodeUsers(docs)
	}
	listeners := make([]docstore.ChangeFunc, 0, len(col.order))
	for _, id := range col.order {
		listeners = append(listeners, col.listeners[id])
	}
	c.mu.Unlock()

	c.logger.Debug("collection changed", "collection", name, "documents", len(docs))
	for _, fn := range listeners {
		fn(docs)
	}
}

func (c *Cache) decodeTrips(docs []docstore.Document) []trip.Trip {
	out := make([]trip.Trip, 0, len(docs))
	for _, doc := range docs {
		var t trip.Trip
		if err := doc.Decode(&t); err != nil {
			c.logger.Warn("skipping undecodable trip", "trip_id", doc.ID, "error", err)
			continue
		}
		t.ID = doc.ID
		out = append(out, t)
	}
	return out
}

func (c *Cache) decodeUsers(docs []docstore.Document) []user.User {
	out := make([]user.User, 0, len(docs))
	for _, doc := range docs {
		var u user.User
		if err := doc.Decode(&u); err != nil {
			c.logger.Warn("skipping undecodable user", "user_id", doc.ID, "error", err)
			continue
		}
		u.ID = doc.ID
		out = append(out, u)
	}
	return out
}

// Ready reports whether the collection has delivered its first snapshot.
// An empty collection that has been read is ready.
func (c *Cache) Ready(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	col := c.collections[name]
	return col != nil && col.ready
}

// WaitReady blocks until the collection has delivered its first snapshot or
// ctx is done. The collection must be watched.
func (c *Cache) WaitReady(ctx context.Context, name string) error {
	c.mu.RLock()
	col := c.collections[name]
	c.mu.RUnlock()
	if col == nil {
		return fmt.Errorf("collection %q is not watched", name)
	}
	select {
	case <-col.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trips returns the cached trips in store order.
func (c *Cache) Trips() []trip.Trip {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.trips)
}

// Trip returns one cached trip.
func (c *Cache) Trip(id string) (trip.Trip, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, t := range c.trips {
		if t.ID == id {
			return t, true
		}
	}
	return trip.Trip{}, false
}

// Users returns the cached users.
func (c *Cache) Users() []user.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.users)
}

// User returns one cached user.
func (c *Cache) User(id string) (user.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return user.Find(c.users, id)
}
