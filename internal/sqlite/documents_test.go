package sqlite

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]docstore.Document
}

func (r *recorder) onChange(docs []docstore.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, docs)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func (r *recorder) last() []docstore.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}
	return r.calls[len(r.calls)-1]
}

func decodeMap(t *testing.T, doc docstore.Document) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, doc.Decode(&out))
	return out
}

func TestDocumentStore_SetGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)

	_, err := store.Get(ctx, docstore.Users, "u1")
	require.ErrorIs(t, err, docstore.ErrNotFound)

	require.NoError(t, store.Set(ctx, docstore.Users, "u1", map[string]any{"name": "Ann", "avatar": "a.svg"}))
	doc, err := store.Get(ctx, docstore.Users, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", doc.ID)
	require.Equal(t, "Ann", decodeMap(t, doc)["name"])

	require.NoError(t, store.Update(ctx, docstore.Users, "u1", map[string]any{"name": "Annie"}))
	doc, err = store.Get(ctx, docstore.Users, "u1")
	require.NoError(t, err)
	fields := decodeMap(t, doc)
	require.Equal(t, "Annie", fields["name"])
	require.Equal(t, "a.svg", fields["avatar"], "update keeps untouched fields")

	err = store.Update(ctx, docstore.Users, "missing", map[string]any{"name": "x"})
	require.ErrorIs(t, err, docstore.ErrNotFound)

	require.NoError(t, store.Delete(ctx, docstore.Users, "u1"))
	require.NoError(t, store.Delete(ctx, docstore.Users, "u1"))
	_, err = store.Get(ctx, docstore.Users, "u1")
	require.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestDocumentStore_UpdateOverwritesWholeField(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)

	id, err := store.Add(ctx, docstore.Trips, map[string]any{"name": "Trip", "days": []string{"a", "b"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, store.Update(ctx, docstore.Trips, id, map[string]any{"days": []string{"c"}}))
	doc, err := store.Get(ctx, docstore.Trips, id)
	require.NoError(t, err)

	var got struct {
		Name string   `json:"name"`
		Days []string `json:"days"`
	}
	require.NoError(t, json.Unmarshal(doc.Data, &got))
	require.Equal(t, "Trip", got.Name)
	require.Equal(t, []string{"c"}, got.Days)
}

func TestDocumentStore_SubscribeDeliversInitialEmptySnapshot(t *testing.T) {
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)
	rec := &recorder{}

	unsubscribe, err := store.Subscribe(context.Background(), docstore.Trips, rec.onChange)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
	require.NotNil(t, rec.last())
	require.Empty(t, rec.last())
}

func TestDocumentStore_SubscribeSeesWrites(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)
	require.NoError(t, store.Set(ctx, docstore.Trips, "t1", map[string]any{"name": "One"}))

	rec := &recorder{}
	unsubscribe, err := store.Subscribe(ctx, docstore.Trips, rec.onChange)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	require.Eventually(t, func() bool { return len(rec.last()) == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, store.Set(ctx, docstore.Trips, "t2", map[string]any{"name": "Two"}))
	require.Eventually(t, func() bool { return len(rec.last()) == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, store.Delete(ctx, docstore.Trips, "t1"))
	require.Eventually(t, func() bool {
		docs := rec.last()
		return len(docs) == 1 && docs[0].ID == "t2"
	}, time.Second, 5*time.Millisecond)
}

func TestDocumentStore_WriteDeliversBeforeReturning(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)

	rec := &recorder{}
	unsubscribe, err := store.Subscribe(ctx, docstore.Trips, rec.onChange)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	require.NoError(t, store.Set(ctx, docstore.Trips, "t1", map[string]any{"name": "One"}))
	require.Len(t, rec.last(), 1)
	require.NoError(t, store.Update(ctx, docstore.Trips, "t1", map[string]any{"name": "Uno"}))
	require.Equal(t, "Uno", decodeMap(t, rec.last()[0])["name"])
}

func TestDocumentStore_WritesToOtherCollectionsDoNotNotify(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)

	rec := &recorder{}
	unsubscribe, err := store.Subscribe(ctx, docstore.Trips, rec.onChange)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, store.Set(ctx, docstore.Users, "u1", map[string]any{"name": "Ann"}))
	require.Never(t, func() bool { return rec.count() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestDocumentStore_UnsubscribeStopsCallbacks(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)

	rec := &recorder{}
	unsubscribe, err := store.Subscribe(ctx, docstore.Trips, rec.onChange)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	unsubscribe()
	unsubscribe()
	require.NoError(t, store.Set(ctx, docstore.Trips, "t1", map[string]any{"name": "One"}))
	require.Never(t, func() bool { return rec.count() > 1 }, 100*time.Millisecond, 10*time.Millisecond)
}

func TestDocumentStore_PollsForExternalWrites(t *testing.T) {
	ctx := context.Background()
	db := NewTestDB(t)
	store := NewDocumentStore(db, 10*time.Millisecond, nil)
	other := NewDocumentStore(db, time.Hour, nil)

	rec := &recorder{}
	unsubscribe, err := store.Subscribe(ctx, docstore.Trips, rec.onChange)
	require.NoError(t, err)
	t.Cleanup(unsubscribe)
	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)

	// only polling sees writes made through another handle
	require.NoError(t, other.Set(ctx, docstore.Trips, "t1", map[string]any{"name": "One"}))
	require.Eventually(t, func() bool { return len(rec.last()) == 1 }, time.Second, 5*time.Millisecond)
}

func TestDocumentStore_Close(t *testing.T) {
	store := NewDocumentStore(NewTestDB(t), time.Hour, nil)
	store.Close()
	_, err := store.Subscribe(context.Background(), docstore.Trips, func([]docstore.Document) {})
	require.ErrorIs(t, err, docstore.ErrClosed)
}
