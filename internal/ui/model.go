package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quotefeed/internal/ads"
	"quotefeed/internal/daily"
	"quotefeed/internal/favorites"
	"quotefeed/internal/feed"
	"quotefeed/internal/logging"
	"quotefeed/internal/platform"
	"quotefeed/internal/quotes"
	"quotefeed/internal/settings"
	"quotefeed/internal/submit"
)

// View mode
type viewMode int

const (
	modeFeed viewMode = iota
	modeSaved
	modeDaily
	modeSubmit
	modeAbout
)

// Deps are the engine components the model drives. Everything here is
// owned by the caller and mutated only from the event thread.
type Deps struct {
	Sequencer *feed.Sequencer
	Syncer    *quotes.Syncer
	Ledger    *favorites.Ledger
	Daily     *daily.Selector
	Settings  *settings.Manager
	Ads       *ads.Context
	Services  platform.Services
	Submitter *submit.Client
}

// Model is the root Bubble Tea model
type Model struct {
	deps Deps
	ctx  context.Context

	mode   viewMode
	width  int
	height int
	ready  bool
	spin   spinner.Model

	// Feed navigation. cursor is the observed position; it commits to the
	// sequencer only after the debounce window settles.
	cursor    int
	scrollGen int
	wrapGen   int
	showingAd bool

	// Focus and sync lifecycle
	focused bool
	tickGen int

	// Saved view
	saved       []quotes.Quote
	savedCursor int

	// Daily view
	dailyQuote  quotes.Quote
	dailyOK     bool
	dailyLoaded bool

	// Submit view
	quoteInput  textinput.Model
	authorInput textinput.Model
	submitFocus int

	status string
	err    error
}

// New creates the root model around the given components.
func New(ctx context.Context, deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	qi := textinput.New()
	qi.Placeholder = "A quote worth keeping"
	qi.CharLimit = 280
	qi.Focus()

	ai := textinput.New()
	ai.Placeholder = "Author (optional)"
	ai.CharLimit = 80

	return Model{
		deps:        deps,
		ctx:         ctx,
		mode:        modeFeed,
		spin:        sp,
		quoteInput:  qi,
		authorInput: ai,
		focused:     true,
	}
}

// Init starts the initial synchronization, the ad runtime, and the
// periodic sync cadence.
func (m Model) Init() tea.Cmd {
	m.deps.Ads.Init()
	var cmds []tea.Cmd
	if cmd := m.startSync(quotes.ModeInitial); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.spin.Tick, m.armSyncTick(m.tickGen))
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.quoteInput.Width = clamp(msg.Width-8, 20, 72)
		m.authorInput.Width = clamp(msg.Width-8, 20, 72)
		return m, nil

	case tea.FocusMsg:
		return m.handleFocus()

	case tea.BlurMsg:
		m.focused = false
		logging.Debug("app blurred, periodic sync suspended")
		return m, nil

	case spinner.TickMsg:
		if m.deps.Sequencer.State() != feed.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SyncDone:
		return m.handleSyncDone(msg)

	case SyncTick:
		if msg.Gen != m.tickGen || !m.focused {
			return m, nil
		}
		var cmds []tea.Cmd
		if m.deps.Sequencer.SyncDue(time.Now()) {
			if cmd := m.startSync(quotes.ModeIncremental); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, m.armSyncTick(m.tickGen))
		return m, tea.Batch(cmds...)

	case ScrollSettled:
		if msg.Gen != m.scrollGen {
			return m, nil
		}
		return m.commitScroll()

	case WrapReset:
		if msg.Gen != m.wrapGen || !m.deps.Sequencer.AtEnd() {
			return m, nil
		}
		m.deps.Sequencer.ResetPosition()
		m.cursor = 0
		return m, nil

	case DailyLoaded:
		m.dailyLoaded = true
		m.dailyQuote = msg.Quote
		m.dailyOK = msg.OK
		return m, nil

	case SubmissionSent:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.status = "Quote submitted. Thanks!"
		m.quoteInput.Reset()
		m.authorInput.Reset()
		m.submitFocus = 0
		m.quoteInput.Focus()
		m.authorInput.Blur()
		m.mode = modeFeed
		return m, nil

	case ShareDone:
		if msg.Err != nil {
			// Share failures degrade to a note, never an error screen.
			logging.Warn("share failed", "err", msg.Err)
			m.status = "Share unavailable"
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleFocus() (tea.Model, tea.Cmd) {
	m.focused = true
	m.tickGen++
	var cmds []tea.Cmd
	if m.deps.Sequencer.CatchUpDue(time.Now()) {
		logging.Debug("refocus catch-up sync")
		if cmd := m.startSync(quotes.ModeIncremental); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, m.armSyncTick(m.tickGen))
	return m, tea.Batch(cmds...)
}

func (m Model) handleSyncDone(msg SyncDone) (tea.Model, tea.Cmd) {
	m.deps.Sequencer.EndSync()

	// A result that lands while backgrounded is stale: the refocus
	// catch-up will fetch again anyway.
	if !m.focused {
		logging.Debug("dropping sync result that arrived while blurred")
		return m, nil
	}

	now := time.Now()
	seq := m.deps.Sequencer
	switch {
	case msg.Mode == quotes.ModeInitial || seq.State() == feed.StateLoading:
		seq.Load(msg.Result.Quotes, now)
		m.cursor = 0
		if seq.State() == feed.StateReady {
			m.deps.Ads.Preload()
		}
	default:
		if n := seq.MergeNew(msg.Result.New, now); n > 0 {
			m.status = fmt.Sprintf("%d new quotes", n)
		}
	}

	// Saved entries only survive while their quote still exists upstream.
	if !msg.Result.FromCache && !msg.Result.FromSamples {
		m.deps.Ledger.PruneTo(m.ctx, quotes.IDSet(msg.Result.Quotes))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		m.err = nil
	}
	m.status = ""

	// An interstitial swallows one keypress to dismiss.
	if m.showingAd {
		m.showingAd = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.mode {
	case modeSubmit:
		return m.handleSubmitKey(msg)
	case modeSaved:
		return m.handleSavedKey(msg)
	case modeDaily:
		return m.handleDailyKey(msg)
	case modeAbout:
		// Any key closes the about screen.
		m.mode = modeFeed
		return m, nil
	}
	return m.handleFeedKey(msg)
}

func (m Model) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	seq := m.deps.Sequencer

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "j", "down", "l", "right", " ":
		if m.cursor < seq.Len()-1 {
			m.cursor++
			return m, m.restartDebounce()
		}
		return m, nil

	case "k", "up", "h", "left":
		if m.cursor > 0 {
			m.cursor--
			return m, m.restartDebounce()
		}
		return m, nil

	case "g", "home":
		if m.cursor != 0 {
			m.cursor = 0
			return m, m.restartDebounce()
		}
		return m, nil

	case "f":
		if q, ok := m.quoteAt(m.cursor); ok {
			saved := m.deps.Ledger.Toggle(m.ctx, q.ID)
			m.deps.Services.Haptic(platform.PulseMedium)
			if saved {
				m.status = "Saved"
			} else {
				m.status = "Removed from saved"
			}
		}
		return m, nil

	case "s":
		if q, ok := m.quoteAt(m.cursor); ok {
			return m, m.shareCmd(q)
		}
		return m, nil

	case "n":
		cur := m.deps.Settings.Current(m.ctx)
		m.deps.Settings.SetHideNSFW(m.ctx, !cur.HideNSFW)
		if !cur.HideNSFW {
			m.status = "Hiding tagged quotes"
		} else {
			m.status = "Showing all quotes"
		}
		// The filter applies on the next load, so resolve a fresh set.
		return m, m.startSync(quotes.ModeInitial)

	case "r":
		return m, m.startSync(quotes.ModeIncremental)

	case "2", "tab":
		m.mode = modeSaved
		m.saved = m.savedQuotes()
		m.savedCursor = 0
		return m, nil

	case "3", "d":
		m.mode = modeDaily
		if !m.dailyLoaded {
			return m, m.dailyCmd()
		}
		return m, nil

	case "4", "a":
		m.mode = modeSubmit
		return m, textinput.Blink

	case "?":
		m.mode = modeAbout
		return m, nil
	}
	return m, nil
}

func (m Model) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "1", "tab":
		m.mode = modeFeed
		return m, nil

	case "j", "down":
		if m.savedCursor < len(m.saved)-1 {
			m.savedCursor++
		}
		return m, nil

	case "k", "up":
		if m.savedCursor > 0 {
			m.savedCursor--
		}
		return m, nil

	case "f", "x":
		if m.savedCursor < len(m.saved) {
			m.deps.Ledger.Remove(m.ctx, m.saved[m.savedCursor].ID)
			m.saved = m.savedQuotes()
			if m.savedCursor >= len(m.saved) && m.savedCursor > 0 {
				m.savedCursor--
			}
		}
		return m, nil

	case "s":
		if m.savedCursor < len(m.saved) {
			return m, m.shareCmd(m.saved[m.savedCursor])
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleDailyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "1", "tab":
		m.mode = modeFeed
		return m, nil

	case "s":
		if m.dailyOK {
			return m, m.shareCmd(m.dailyQuote)
		}
		return m, nil

	case "r":
		m.dailyLoaded = false
		return m, m.dailyCmd()
	}
	return m, nil
}

func (m Model) handleSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeFeed
		return m, nil

	case "tab", "shift+tab":
		m.submitFocus = 1 - m.submitFocus
		if m.submitFocus == 0 {
			m.quoteInput.Focus()
			m.authorInput.Blur()
		} else {
			m.authorInput.Focus()
			m.quoteInput.Blur()
		}
		return m, textinput.Blink

	case "enter":
		if m.submitFocus == 0 {
			m.submitFocus = 1
			m.authorInput.Focus()
			m.quoteInput.Blur()
			return m, textinput.Blink
		}
		text := m.quoteInput.Value()
		if text == "" {
			m.status = "Nothing to submit"
			return m, nil
		}
		return m, m.submitCmd(text, m.authorInput.Value())
	}

	var cmd tea.Cmd
	if m.submitFocus == 0 {
		m.quoteInput, cmd = m.quoteInput.Update(msg)
	} else {
		m.authorInput, cmd = m.authorInput.Update(msg)
	}
	return m, cmd
}

// commitScroll applies the settled cursor to the sequencer and fires the
// side effects of arriving at a slot.
func (m Model) commitScroll() (tea.Model, tea.Cmd) {
	seq := m.deps.Sequencer
	if !seq.SetPosition(m.cursor) {
		return m, nil
	}
	m.deps.Services.Haptic(platform.PulseLight)

	var cmds []tea.Cmd
	if feed.AdDue(seq.Position()) {
		if m.deps.Ads.ShowIfReady() {
			m.showingAd = true
		}
		m.deps.Ads.Preload()
	}
	if seq.AtEnd() {
		m.wrapGen++
		cmds = append(cmds, m.armWrapReset(m.wrapGen))
	}
	return m, tea.Batch(cmds...)
}

// Commands

func (m Model) startSync(mode quotes.Mode) tea.Cmd {
	if !m.deps.Sequencer.BeginSync() {
		return nil
	}
	known := quotes.IDSet(m.deps.Sequencer.Quotes())
	syncer := m.deps.Syncer
	ctx := m.ctx
	return func() tea.Msg {
		return SyncDone{Mode: mode, Result: syncer.Synchronize(ctx, mode, known)}
	}
}

func (m *Model) restartDebounce() tea.Cmd {
	m.scrollGen++
	gen := m.scrollGen
	return tea.Tick(feed.DebounceWindow, func(time.Time) tea.Msg {
		return ScrollSettled{Gen: gen}
	})
}

func (m Model) armWrapReset(gen int) tea.Cmd {
	return tea.Tick(feed.WrapDelay, func(time.Time) tea.Msg {
		return WrapReset{Gen: gen}
	})
}

func (m Model) armSyncTick(gen int) tea.Cmd {
	return tea.Tick(feed.SyncInterval, func(time.Time) tea.Msg {
		return SyncTick{Gen: gen}
	})
}

func (m Model) shareCmd(q quotes.Quote) tea.Cmd {
	services := m.deps.Services
	return func() tea.Msg {
		return ShareDone{Err: services.Share(quotes.ShareText(q))}
	}
}

func (m Model) dailyCmd() tea.Cmd {
	sel := m.deps.Daily
	ctx := m.ctx
	return func() tea.Msg {
		q, ok := sel.Today(ctx)
		return DailyLoaded{Quote: q, OK: ok}
	}
}

func (m Model) submitCmd(text, author string) tea.Cmd {
	client := m.deps.Submitter
	ctx := m.ctx
	return func() tea.Msg {
		return SubmissionSent{Err: client.Send(ctx, submit.Submission{Quote: text, Author: author})}
	}
}

// Helpers

func (m Model) quoteAt(i int) (quotes.Quote, bool) {
	qs := m.deps.Sequencer.Quotes()
	if i < 0 || i >= len(qs) {
		return quotes.Quote{}, false
	}
	return qs[i], true
}

func (m Model) savedQuotes() []quotes.Quote {
	ids := m.deps.Ledger.IDs(m.ctx)
	var out []quotes.Quote
	for _, q := range m.deps.Sequencer.Quotes() {
		if ids[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Cursor returns the observed feed position (for testing).
func (m Model) Cursor() int { return m.cursor }

// ShowingAd reports whether an interstitial overlay is up (for testing).
func (m Model) ShowingAd() bool { return m.showingAd }
