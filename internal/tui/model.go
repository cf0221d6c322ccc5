package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/discovery"
	"github.com/peakfindr/peakfindr/internal/feed"
	"github.com/peakfindr/peakfindr/internal/model"
)

// Default timeouts for commands issued from the keyboard
const (
	DefaultLoadTimeout   = 30 * time.Second
	DefaultActionTimeout = 10 * time.Second
)

type changedMsg struct{}

type loadedMsg struct{ err error }

type actionMsg struct {
	outcome model.Outcome
	err     error
}

type detailMsg struct{ item model.FeedItem }

type failureMsg struct {
	outcome model.Outcome
	err     error
}

type openedMsg struct{ err error }

// Options configures a Model
type Options struct {
	Logger      *zap.Logger
	LoadTimeout time.Duration
	// OpenURL hands a link to the system browser
	OpenURL func(string) error
}

// Model is the bubbletea model wrapping a discovery session
type Model struct {
	session *discovery.Session
	log     *zap.Logger
	keys    keyMap
	spinner spinner.Model

	loadTimeout time.Duration
	openURL     func(string) error

	changes  chan struct{}
	details  chan model.FeedItem
	failures chan failureMsg
	quit     chan struct{}

	detail   *model.FeedItem
	status   string
	failed   bool
	quitting bool
}

// New creates a model and registers it for session notifications. Only one
// front-end may be attached to a session at a time.
func New(session *discovery.Session, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	loadTimeout := opts.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Theme.Meta

	m := &Model{
		session:     session,
		log:         logger.Named("tui"),
		keys:        defaultKeyMap(),
		spinner:     s,
		loadTimeout: loadTimeout,
		openURL:     opts.OpenURL,
		changes:     make(chan struct{}, 1),
		details:     make(chan model.FeedItem, 1),
		failures:    make(chan failureMsg, 8),
		quit:        make(chan struct{}),
	}

	session.OnChange(func() {
		select {
		case m.changes <- struct{}{}:
		default:
		}
	})
	session.OnOpenDetail(func(item model.FeedItem) {
		select {
		case m.details <- item:
		default:
		}
	})
	session.OnPersistenceFailure(func(out model.Outcome, err error) {
		select {
		case m.failures <- failureMsg{outcome: out, err: err}:
		default:
			m.log.Warn("Dropped failure notice", zap.Stringer("outcome", out), zap.Error(err))
		}
	})
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(), m.waitForEvent())
}

// Close stops the event listener. The session itself is owned by the caller.
func (m *Model) Close() {
	select {
	case <-m.quit:
	default:
		close(m.quit)
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case changedMsg:
		return m, m.waitForEvent()

	case loadedMsg:
		if msg.err != nil {
			m.log.Debug("Load failed", zap.Error(msg.err))
		}
		return m, nil

	case actionMsg:
		m.handleAction(msg)
		return m, nil

	case detailMsg:
		item := msg.item
		m.detail = &item
		return m, nil

	case failureMsg:
		m.status = fmt.Sprintf("Couldn't record %s: %v", msg.outcome.Kind, msg.err)
		m.failed = true
		return m, m.waitForEvent()

	case openedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Couldn't open link: %v", msg.err)
			m.failed = true
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		m.Close()
		return m, tea.Quit
	}

	if m.detail != nil {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.detail = nil
		case key.Matches(msg, m.keys.Maps):
			return m, m.openMaps(*m.detail)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Skip):
		return m, m.swipe(model.OutcomeSkip)
	case key.Matches(msg, m.keys.Save):
		return m, m.swipe(model.OutcomeSave)
	case key.Matches(msg, m.keys.Open):
		return m, m.open()
	case key.Matches(msg, m.keys.Reload):
		m.status, m.failed = "", false
		return m, m.load()
	case key.Matches(msg, m.keys.Category):
		m.session.SetCategory(nextCategory(m.session.Category()))
	}
	return m, nil
}

func (m *Model) handleAction(msg actionMsg) {
	switch {
	case errors.Is(msg.err, feed.ErrEmptyFeed), errors.Is(msg.err, discovery.ErrGestureActive):
		return
	case msg.err != nil:
		m.status = msg.err.Error()
		m.failed = true
		return
	}

	switch msg.outcome.Kind {
	case model.OutcomeSave:
		m.status, m.failed = "Saved", false
	case model.OutcomeSkip:
		m.status, m.failed = "Skipped", false
	}
}

// load fetches the feed; the resulting redraw arrives through changedMsg
func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.loadTimeout)
		defer cancel()
		return loadedMsg{err: m.session.Load(ctx)}
	}
}

func (m *Model) swipe(kind model.OutcomeKind) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultActionTimeout)
		defer cancel()
		out, err := m.session.Swipe(ctx, kind)
		return actionMsg{outcome: out, err: err}
	}
}

// open taps the top card. The session reports the item synchronously, so it
// is already waiting in details when Open returns.
func (m *Model) open() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), DefaultActionTimeout)
		defer cancel()
		out, err := m.session.Open(ctx)
		if err != nil || out.Kind != model.OutcomeTapOpen {
			return actionMsg{outcome: out, err: err}
		}
		select {
		case item := <-m.details:
			return detailMsg{item: item}
		default:
			return actionMsg{outcome: out}
		}
	}
}

func (m *Model) openMaps(item model.FeedItem) tea.Cmd {
	if item.MapsURL == "" || m.openURL == nil {
		return nil
	}
	return func() tea.Msg {
		return openedMsg{err: m.openURL(item.MapsURL)}
	}
}

// waitForEvent blocks until the session reports a change or a failure
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changes:
			return changedMsg{}
		case f := <-m.failures:
			return f
		case <-m.quit:
			return nil
		}
	}
}

func nextCategory(c model.Category) model.Category {
	all := model.Categories()
	for i, candidate := range all {
		if candidate == c {
			return all[(i+1)%len(all)]
		}
	}
	return model.CategoryAll
}
