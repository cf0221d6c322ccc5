package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/peakfindr/peakfindr/internal/feed"
	"github.com/peakfindr/peakfindr/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recorder captures calls and can be made to block or fail
type recorder struct {
	mu      sync.Mutex
	keys    []model.Key
	err     error
	release chan struct{}
}

func (r *recorder) record(ctx context.Context, key model.Key) error {
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
	return r.err
}

func (r *recorder) RecordSkip(ctx context.Context, key model.Key) error { return r.record(ctx, key) }
func (r *recorder) RecordSave(ctx context.Context, key model.Key) error { return r.record(ctx, key) }

func (r *recorder) calls() []model.Key {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Key(nil), r.keys...)
}

type opener struct {
	opened []model.Key
}

func (o *opener) OpenDetail(key model.Key) { o.opened = append(o.opened, key) }

func newStore(t *testing.T, n int) (*feed.Store, []model.FeedItem) {
	t.Helper()
	items := make([]model.FeedItem, n)
	for i := range items {
		items[i] = model.FeedItem{Key: model.NewKey(), Name: "loc"}
	}
	s := feed.NewStore(nil)
	require.NoError(t, s.ReplaceAll(items))
	return s, items
}

func TestDispatch_SkipAdvancesBeforePersistenceCompletes(t *testing.T) {
	store, items := newStore(t, 3)
	skips := &recorder{release: make(chan struct{})}
	d := NewDispatcher(store, Collaborators{Skips: skips}, Config{}, nil)

	require.NoError(t, d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSkip, Key: items[0].Key}))

	top, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, items[1].Key, top.Key, "feed must advance synchronously")
	assert.Empty(t, skips.calls(), "persistence still in flight")

	close(skips.release)
	d.Wait()
	assert.Equal(t, []model.Key{items[0].Key}, skips.calls())
}

func TestDispatch_SaveCallsRecorderAndAdvances(t *testing.T) {
	store, items := newStore(t, 3)
	saves := &recorder{}
	d := NewDispatcher(store, Collaborators{Saves: saves}, Config{}, nil)

	require.NoError(t, d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSave, Key: items[0].Key}))
	d.Wait()

	assert.Equal(t, []model.Key{items[0].Key}, saves.calls())
	assert.Equal(t, 2, store.Len())
}

func TestDispatch_SaveFailureIsLoggedNotRolledBack(t *testing.T) {
	store, items := newStore(t, 2)
	core, logs := observer.New(zapcore.WarnLevel)
	saves := &recorder{err: errors.New("502 bad gateway")}
	d := NewDispatcher(store, Collaborators{Saves: saves}, Config{}, zap.New(core))

	var failures []error
	var mu sync.Mutex
	d.SetFailureCallback(func(_ model.Outcome, err error) {
		mu.Lock()
		failures = append(failures, err)
		mu.Unlock()
	})

	require.NoError(t, d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSave, Key: items[0].Key}))
	d.Wait()

	assert.Equal(t, 1, store.Len(), "feed stays advanced")
	assert.Equal(t, 1, logs.FilterMessage("Persistence call failed").Len())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, failures, 1)
	var perr *PersistenceError
	require.ErrorAs(t, failures[0], &perr)
	assert.Equal(t, model.OutcomeSave, perr.Outcome.Kind)
	assert.EqualError(t, errors.Unwrap(failures[0]), "502 bad gateway")
}

func TestDispatch_SaveFailureRollback(t *testing.T) {
	store, items := newStore(t, 2)
	saves := &recorder{err: errors.New("offline")}
	d := NewDispatcher(store, Collaborators{Saves: saves}, Config{RollbackOnSaveFailure: true}, nil)

	require.NoError(t, d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSave, Key: items[0].Key}))
	d.Wait()

	top, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, items[0].Key, top.Key)
	assert.Equal(t, 2, store.Len())
}

func TestDispatch_SkipFailureNeverRollsBack(t *testing.T) {
	store, items := newStore(t, 2)
	skips := &recorder{err: errors.New("offline")}
	d := NewDispatcher(store, Collaborators{Skips: skips}, Config{RollbackOnSaveFailure: true}, nil)

	require.NoError(t, d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSkip, Key: items[0].Key}))
	d.Wait()

	assert.Equal(t, 1, store.Len())
}

func TestDispatch_TapOpenDoesNotMutate(t *testing.T) {
	store, items := newStore(t, 1)
	details := &opener{}
	d := NewDispatcher(store, Collaborators{Details: details}, Config{}, nil)

	require.NoError(t, d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeTapOpen, Key: items[0].Key}))

	assert.Equal(t, []model.Key{items[0].Key}, details.opened)
	assert.Equal(t, 1, store.Len())
}

func TestDispatch_CancelledIsInert(t *testing.T) {
	store, items := newStore(t, 2)
	skips, saves, details := &recorder{}, &recorder{}, &opener{}
	d := NewDispatcher(store, Collaborators{Skips: skips, Saves: saves, Details: details}, Config{}, nil)

	require.NoError(t, d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeCancelled, Key: items[0].Key}))
	d.Wait()

	assert.Equal(t, 2, store.Len())
	assert.Empty(t, skips.calls())
	assert.Empty(t, saves.calls())
	assert.Empty(t, details.opened)
}

func TestDispatch_StaleOutcome(t *testing.T) {
	store, items := newStore(t, 2)
	saves := &recorder{}
	d := NewDispatcher(store, Collaborators{Saves: saves}, Config{}, nil)

	err := d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSave, Key: items[1].Key})
	assert.ErrorIs(t, err, ErrStaleOutcome)
	d.Wait()

	assert.Equal(t, 2, store.Len())
	assert.Empty(t, saves.calls())
}

// racingStore runs a concurrent mutation right before the dispatcher's
// removal reaches the store
type racingStore struct {
	*feed.Store
	before func()
}

func (r *racingStore) RemoveTopIf(key model.Key) (model.FeedItem, error) {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	return r.Store.RemoveTopIf(key)
}

func TestDispatch_ConcurrentRemoveByKey(t *testing.T) {
	store, items := newStore(t, 3)
	saves := &recorder{}
	racing := &racingStore{Store: store, before: func() {
		// The remote like for A confirms while the save is being dispatched.
		require.True(t, store.RemoveByKey(items[0].Key))
	}}
	d := NewDispatcher(racing, Collaborators{Saves: saves}, Config{}, nil)

	err := d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSave, Key: items[0].Key})
	assert.ErrorIs(t, err, ErrStaleOutcome)
	d.Wait()

	assert.Equal(t, []model.FeedItem{items[1], items[2]}, store.Items(), "unrelated items must survive")
	assert.Empty(t, saves.calls())
}

func TestDispatch_ConcurrentRestore(t *testing.T) {
	store, items := newStore(t, 2)
	skips := &recorder{}
	restored := model.FeedItem{Key: model.NewKey(), Name: "rolled back"}
	racing := &racingStore{Store: store, before: func() {
		require.NoError(t, store.Restore(restored))
	}}
	d := NewDispatcher(racing, Collaborators{Skips: skips}, Config{}, nil)

	err := d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSkip, Key: items[0].Key})
	assert.ErrorIs(t, err, ErrStaleOutcome)
	d.Wait()

	assert.Equal(t, []model.FeedItem{restored, items[0], items[1]}, store.Items())
	assert.Empty(t, skips.calls())
}

func TestDispatch_ConcurrentOutcomesAndRemovals(t *testing.T) {
	store, items := newStore(t, 100)
	skips := &recorder{}
	d := NewDispatcher(store, Collaborators{Skips: skips}, Config{}, nil)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for {
			top, ok := store.Current()
			if !ok {
				return
			}
			err := d.Dispatch(context.Background(), model.Outcome{Kind: model.OutcomeSkip, Key: top.Key})
			if err != nil {
				assert.ErrorIs(t, err, ErrStaleOutcome)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < len(items); i += 3 {
			store.RemoveByKey(items[i].Key)
		}
	}()
	wg.Wait()
	d.Wait()

	assert.Equal(t, 0, store.Len())
	skipped := make(map[model.Key]bool)
	for _, key := range skips.calls() {
		assert.False(t, skipped[key], "key %s skipped twice", key)
		skipped[key] = true
	}
}

func TestDispatch_PersistenceOutlivesCallerContext(t *testing.T) {
	store, items := newStore(t, 1)
	saves := &recorder{release: make(chan struct{})}
	d := NewDispatcher(store, Collaborators{Saves: saves}, Config{CallTimeout: time.Minute}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.Dispatch(ctx, model.Outcome{Kind: model.OutcomeSave, Key: items[0].Key}))
	cancel()

	close(saves.release)
	d.Wait()
	assert.Equal(t, []model.Key{items[0].Key}, saves.calls())
}

func TestSkipLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := LogSkips(zap.New(core))

	key := model.NewKey()
	require.NoError(t, s.RecordSkip(context.Background(), key))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, key.String(), logs.All()[0].ContextMap()["key"])
}
