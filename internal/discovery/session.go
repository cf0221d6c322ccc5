package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/peakfindr/peakfindr/internal/dispatch"
	"github.com/peakfindr/peakfindr/internal/events"
	"github.com/peakfindr/peakfindr/internal/feed"
	"github.com/peakfindr/peakfindr/internal/model"
	"github.com/peakfindr/peakfindr/internal/stack"
	"github.com/peakfindr/peakfindr/internal/swipe"
)

// ErrGestureActive is returned by Swipe and Open while a pointer drag is in
// progress
var ErrGestureActive = errors.New("gesture in progress")

// Loader fetches the discovery feed for a user
type Loader interface {
	LoadFeed(ctx context.Context, user string) ([]model.FeedItem, error)
}

// Options configures a Session
type Options struct {
	User          string
	Category      model.Category
	Swipe         swipe.Config
	Stack         stack.Config
	Dispatch      dispatch.Config
	Collaborators dispatch.Collaborators
	Logger        *zap.Logger
}

// Session owns the state behind one discovery screen
type Session struct {
	loader Loader
	user   string
	log    *zap.Logger

	bus   *events.Bus[feed.Event]
	store *feed.Store
	ctrl  *swipe.Controller
	disp  dispatch.Outcomes
	sub   *events.Subscription[feed.Event]
	loads singleflight.Group

	mu       sync.RWMutex
	state    LoadState
	loadErr  error
	category model.Category
	policy   stack.Policy
	pool     []model.FeedItem // deduplicated result of the last load
	consumed map[model.Key]struct{}
	onChange func()
	onDetail func(model.FeedItem)

	closeOnce sync.Once
	done      chan struct{}
}

// NewSession creates a session and starts following feed changes. Call Close
// when the screen goes away.
func NewSession(loader Loader, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	category := opts.Category
	if category == "" {
		category = model.CategoryAll
	}

	bus := events.NewBus[feed.Event]()
	store := feed.NewStore(bus)
	s := &Session{
		loader:   loader,
		user:     opts.User,
		log:      logger.Named("discovery"),
		bus:      bus,
		store:    store,
		ctrl:     swipe.NewController(store, opts.Swipe),
		policy:   stack.NewPolicy(opts.Stack),
		category: category,
		consumed: make(map[model.Key]struct{}),
		done:     make(chan struct{}),
	}
	collab := opts.Collaborators
	if collab.Details == nil {
		collab.Details = detailHook{s}
	}
	s.disp = dispatch.NewDispatcher(trackingStore{s}, collab, opts.Dispatch, logger)
	s.sub = bus.Subscribe()

	go s.follow()
	return s
}

// OnChange registers fn to run after every feed or load state change. It is
// called from a background goroutine.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// OnOpenDetail registers fn to receive tapped items. It is only used when
// Options.Collaborators.Details is nil.
func (s *Session) OnOpenDetail(fn func(model.FeedItem)) {
	s.mu.Lock()
	s.onDetail = fn
	s.mu.Unlock()
}

// OnPersistenceFailure registers fn to run after a failed save or skip call
func (s *Session) OnPersistenceFailure(fn func(model.Outcome, error)) {
	s.disp.SetFailureCallback(fn)
}

// Load fetches the feed and replaces the store. Concurrent calls share one
// request.
func (s *Session) Load(ctx context.Context) error {
	_, err, _ := s.loads.Do("feed", func() (any, error) {
		return nil, s.load(ctx)
	})
	return err
}

func (s *Session) load(ctx context.Context) error {
	s.setState(StateLoading, nil)

	items, err := s.loader.LoadFeed(ctx, s.user)
	if err != nil {
		lerr := &LoadError{Err: err}
		s.log.Warn("Feed load failed", zap.Error(err))
		s.mu.Lock()
		s.pool = nil
		s.consumed = make(map[model.Key]struct{})
		s.mu.Unlock()
		_ = s.store.ReplaceAll(nil)
		s.setState(StateLoadFailed, lerr)
		return lerr
	}

	pool := dedupe(items)
	if dropped := len(items) - len(pool); dropped > 0 {
		s.log.Info("Dropped duplicate feed items", zap.Int("count", dropped))
	}

	s.mu.Lock()
	s.pool = pool
	s.consumed = make(map[model.Key]struct{})
	visible := filter(pool, s.category, nil)
	s.mu.Unlock()

	if err := s.store.ReplaceAll(visible); err != nil {
		// dedupe guarantees unique keys
		return err
	}
	s.log.Info("Feed loaded", zap.Int("items", len(pool)), zap.Int("visible", len(visible)))
	s.setState(StateReady, nil)
	return nil
}

// State returns the load state and, in StateLoadFailed, the load error
func (s *Session) State() (LoadState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.loadErr
}

// Category returns the active filter
func (s *Session) Category() model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// SetCategory switches the filter and rebuilds the feed from the loaded items
// that have not been swiped away yet.
func (s *Session) SetCategory(c model.Category) {
	s.mu.Lock()
	if c == s.category {
		s.mu.Unlock()
		return
	}
	s.category = c
	visible := filter(s.pool, c, s.consumed)
	s.mu.Unlock()

	_ = s.store.ReplaceAll(visible)
}

// SetSwipeConfig changes the gesture thresholds
func (s *Session) SetSwipeConfig(cfg swipe.Config) error {
	return s.ctrl.SetConfig(cfg)
}

// SetStackConfig changes the stack layout
func (s *Session) SetStackConfig(cfg stack.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	s.policy = stack.NewPolicy(cfg)
	s.mu.Unlock()
	s.notify()
	return nil
}

// Reconfigure applies thresholds, layout and filter together. Invalid
// parts are rejected and reported while the rest still apply.
func (s *Session) Reconfigure(sw swipe.Config, st stack.Config, c model.Category) error {
	err := errors.Join(s.SetSwipeConfig(sw), s.SetStackConfig(st))
	s.SetCategory(c)
	return err
}

// Items returns a copy of the current feed
func (s *Session) Items() []model.FeedItem {
	return s.store.Items()
}

// Current returns the top item
func (s *Session) Current() (model.FeedItem, bool) {
	return s.store.Current()
}

// Gesture returns the live gesture state
func (s *Session) Gesture() model.GestureState {
	return s.ctrl.Gesture()
}

// SwipeConfig returns the active gesture thresholds
func (s *Session) SwipeConfig() swipe.Config {
	return s.ctrl.Config()
}

// Transforms returns the visible cards in back-to-front draw order
func (s *Session) Transforms() []model.VisibleTransform {
	s.mu.RLock()
	policy := s.policy
	s.mu.RUnlock()
	return policy.Ordered(s.store.Prefix(policy.Visible()), s.ctrl.Gesture())
}

// Visible returns the items the current transforms refer to, top first
func (s *Session) Visible() []model.FeedItem {
	s.mu.RLock()
	n := s.policy.Visible()
	s.mu.RUnlock()
	return s.store.Prefix(n)
}

// PointerDown starts a drag on key. Only the top item accepts it.
func (s *Session) PointerDown(key model.Key, pos model.Vector) bool {
	return s.ctrl.PointerDown(key, pos)
}

// PointerMove updates the drag. A drag whose item is no longer on top is
// cancelled, which the returned bool reports.
func (s *Session) PointerMove(ctx context.Context, pos model.Vector) (model.Outcome, bool, error) {
	out, ok := s.ctrl.PointerMove(pos)
	if !ok {
		s.notify()
		return model.Outcome{}, false, nil
	}
	return out, true, s.dispatch(ctx, out)
}

// PointerUp ends the drag and dispatches its outcome. The returned bool is
// false when no drag was active.
func (s *Session) PointerUp(ctx context.Context, pos model.Vector) (model.Outcome, bool, error) {
	out, ok := s.ctrl.PointerUp(pos)
	if !ok {
		return model.Outcome{}, false, nil
	}
	return out, true, s.dispatch(ctx, out)
}

// Swipe plays a complete drag on the top item that lands just past the
// threshold, so keyboard and button input take the same path as a finger.
// kind must be OutcomeSkip or OutcomeSave.
func (s *Session) Swipe(ctx context.Context, kind model.OutcomeKind) (model.Outcome, error) {
	var dir float64
	switch kind {
	case model.OutcomeSkip:
		dir = -1
	case model.OutcomeSave:
		dir = 1
	default:
		return model.Outcome{}, fmt.Errorf("swipe: unsupported outcome %s", kind)
	}
	return s.synthetic(ctx, model.Vector{X: dir * (s.ctrl.Config().Threshold + 1)})
}

// Open taps the top item
func (s *Session) Open(ctx context.Context) (model.Outcome, error) {
	return s.synthetic(ctx, model.Vector{})
}

func (s *Session) synthetic(ctx context.Context, delta model.Vector) (model.Outcome, error) {
	top, ok := s.store.CurrentKey()
	if !ok {
		return model.Outcome{}, feed.ErrEmptyFeed
	}
	if !s.ctrl.PointerDown(top, model.Vector{}) {
		return model.Outcome{}, ErrGestureActive
	}
	if delta != (model.Vector{}) {
		if out, cancelled, err := s.PointerMove(ctx, model.Vector{X: delta.X / 2}); cancelled || err != nil {
			return out, err
		}
	}
	out, _, err := s.PointerUp(ctx, delta)
	return out, err
}

// Abandon drops an in-progress drag without an outcome
func (s *Session) Abandon() {
	s.ctrl.Abandon()
	s.notify()
}

func (s *Session) dispatch(ctx context.Context, out model.Outcome) error {
	s.log.Debug("Outcome", zap.Stringer("outcome", out))
	err := s.disp.Dispatch(ctx, out)
	if errors.Is(err, dispatch.ErrStaleOutcome) {
		s.log.Debug("Stale outcome ignored", zap.Stringer("outcome", out))
		err = nil
	}
	if out.Kind == model.OutcomeCancelled || out.Kind == model.OutcomeTapOpen {
		// Neither touches the store, so no event will trigger a redraw.
		s.notify()
	}
	return err
}

// Wait blocks until in-flight persistence calls have finished
func (s *Session) Wait() {
	s.disp.Wait()
}

// Close stops following the feed, drops any drag and waits for in-flight
// persistence calls.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.ctrl.Abandon()
		s.sub.Close()
		<-s.done
		s.disp.Wait()
		s.bus.Close()
	})
}

// follow reconciles the controller with every top change
func (s *Session) follow() {
	defer close(s.done)
	for range s.sub.C {
		top, ok := s.store.CurrentKey()
		if out, cancelled := s.ctrl.TopChanged(top, ok); cancelled {
			s.log.Debug("Drag cancelled by feed change", zap.Stringer("outcome", out))
			_ = s.disp.Dispatch(context.Background(), out)
		}
		s.notify()
	}
}

func (s *Session) setState(state LoadState, err error) {
	s.mu.Lock()
	s.state = state
	s.loadErr = err
	s.mu.Unlock()
	s.notify()
}

func (s *Session) notify() {
	s.mu.RLock()
	fn := s.onChange
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (s *Session) markConsumed(key model.Key, consumed bool) {
	s.mu.Lock()
	if consumed {
		s.consumed[key] = struct{}{}
	} else {
		delete(s.consumed, key)
	}
	s.mu.Unlock()
}

// trackingStore records which items left the feed through an outcome so that
// a category switch does not bring them back.
type trackingStore struct {
	s *Session
}

func (t trackingStore) RemoveTopIf(key model.Key) (model.FeedItem, error) {
	item, err := t.s.store.RemoveTopIf(key)
	if err == nil {
		t.s.markConsumed(item.Key, true)
	}
	return item, err
}

func (t trackingStore) Restore(item model.FeedItem) error {
	if err := t.s.store.Restore(item); err != nil {
		return err
	}
	t.s.markConsumed(item.Key, false)
	return nil
}

// detailHook forwards taps to the OnOpenDetail callback
type detailHook struct {
	s *Session
}

func (h detailHook) OpenDetail(key model.Key) {
	item, ok := h.s.store.Current()
	if !ok || item.Key != key {
		return
	}
	h.s.mu.RLock()
	fn := h.s.onDetail
	h.s.mu.RUnlock()
	if fn != nil {
		fn(item)
	}
}

// dedupe keeps the first occurrence of every key
func dedupe(items []model.FeedItem) []model.FeedItem {
	seen := make(map[model.Key]struct{}, len(items))
	out := make([]model.FeedItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.Key]; dup {
			continue
		}
		seen[item.Key] = struct{}{}
		out = append(out, item)
	}
	return out
}

func filter(items []model.FeedItem, c model.Category, skip map[model.Key]struct{}) []model.FeedItem {
	out := make([]model.FeedItem, 0, len(items))
	for _, item := range items {
		if _, gone := skip[item.Key]; gone {
			continue
		}
		if c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}
