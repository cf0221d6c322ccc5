package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/peakfindr/peakfindr/internal/model"
)

// DefaultCallTimeout bounds a single background persistence call
const DefaultCallTimeout = 15 * time.Second

// Config tunes dispatcher behaviour
type Config struct {
	// RollbackOnSaveFailure puts a saved item back on top of the feed when
	// the save call fails. Off by default: the feed always advances.
	RollbackOnSaveFailure bool
	// CallTimeout bounds each persistence call; zero means DefaultCallTimeout
	CallTimeout time.Duration
}

// Collaborators are the external services an outcome may reach
type Collaborators struct {
	Skips   SkipRecorder
	Saves   SaveRecorder
	Details DetailOpener
}

var _ Outcomes = (*Dispatcher)(nil)

// Dispatcher applies outcomes to the feed and launches persistence calls
type Dispatcher struct {
	store   FeedStore
	collab  Collaborators
	cfg     Config
	log     *zap.Logger
	group   errgroup.Group
	cbMutex sync.RWMutex
	onFail  func(model.Outcome, error) // callback for UI/tests
}

// NewDispatcher creates a dispatcher. Nil collaborators are skipped; a nil
// logger disables logging.
func NewDispatcher(store FeedStore, collab Collaborators, cfg Config, logger *zap.Logger) *Dispatcher {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:  store,
		collab: collab,
		cfg:    cfg,
		log:    logger.Named("dispatch"),
	}
}

// SetFailureCallback sets the function called after a persistence failure
func (d *Dispatcher) SetFailureCallback(callback func(model.Outcome, error)) {
	d.cbMutex.Lock()
	d.onFail = callback
	d.cbMutex.Unlock()
}

// Dispatch applies outcome. Skip and Save remove the top item before
// returning; their persistence call continues in the background on a context
// detached from ctx's cancellation.
func (d *Dispatcher) Dispatch(ctx context.Context, outcome model.Outcome) error {
	switch outcome.Kind {
	case model.OutcomeCancelled:
		return nil

	case model.OutcomeTapOpen:
		if d.collab.Details != nil {
			d.collab.Details.OpenDetail(outcome.Key)
		}
		return nil

	default:
		if !outcome.Kind.AdvancesFeed() {
			return fmt.Errorf("unknown outcome kind: %d", outcome.Kind)
		}
		top, err := d.store.RemoveTopIf(outcome.Key)
		if err != nil {
			d.log.Debug("Dropping stale outcome", zap.Stringer("outcome", outcome), zap.Error(err))
			return fmt.Errorf("%w: %s", ErrStaleOutcome, outcome)
		}
		d.persist(ctx, outcome, top)
		return nil
	}
}

// Wait blocks until every in-flight persistence call has finished
func (d *Dispatcher) Wait() {
	_ = d.group.Wait()
}

// persist launches the recorder call for outcome without waiting for it
func (d *Dispatcher) persist(ctx context.Context, outcome model.Outcome, item model.FeedItem) {
	var call func(context.Context, model.Key) error
	switch {
	case outcome.Kind == model.OutcomeSkip && d.collab.Skips != nil:
		call = d.collab.Skips.RecordSkip
	case outcome.Kind == model.OutcomeSave && d.collab.Saves != nil:
		call = d.collab.Saves.RecordSave
	default:
		return
	}

	bg := context.WithoutCancel(ctx)
	d.group.Go(func() error {
		callCtx, cancel := context.WithTimeout(bg, d.cfg.CallTimeout)
		defer cancel()

		if err := call(callCtx, outcome.Key); err != nil {
			d.handleFailure(outcome, item, err)
		}
		// Failures are absorbed here; the group only tracks completion.
		return nil
	})
}

func (d *Dispatcher) handleFailure(outcome model.Outcome, item model.FeedItem, err error) {
	perr := &PersistenceError{Outcome: outcome, Err: err}
	d.log.Warn("Persistence call failed",
		zap.Stringer("outcome", outcome),
		zap.String("name", item.Name),
		zap.Error(err))

	if outcome.Kind == model.OutcomeSave && d.cfg.RollbackOnSaveFailure {
		if rerr := d.store.Restore(item); rerr != nil {
			d.log.Warn("Rollback skipped", zap.Stringer("key", outcome.Key), zap.Error(rerr))
		} else {
			d.log.Info("Rolled back failed save", zap.Stringer("key", outcome.Key))
		}
	}

	d.cbMutex.RLock()
	cb := d.onFail
	d.cbMutex.RUnlock()
	if cb != nil {
		cb(outcome, perr)
	}
}
