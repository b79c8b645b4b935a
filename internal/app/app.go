package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kevm/bubbleo/navstack"
	"github.com/kevm/bubbleo/window"
	zone "github.com/lrstanley/bubblezone"
	"go.dalton.dog/bubbleup"
	"go.uber.org/zap"

	"github.com/NotMugil/nyt-tui/internal/api"
	"github.com/NotMugil/nyt-tui/internal/books"
	"github.com/NotMugil/nyt-tui/internal/common"
	"github.com/NotMugil/nyt-tui/internal/keystore"
	"github.com/NotMugil/nyt-tui/internal/session"
	"github.com/NotMugil/nyt-tui/internal/ui/bookdetail"
	"github.com/NotMugil/nyt-tui/internal/ui/catalog"
	"github.com/NotMugil/nyt-tui/internal/ui/chart"
	"github.com/NotMugil/nyt-tui/internal/ui/finder"
	"github.com/NotMugil/nyt-tui/internal/ui/setup"
)

// Screen is an interface that all screens implement.
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

// inputFocusable is implemented by screens that have text inputs.
type inputFocusable interface {
	InputFocused() bool
}

// sizable is implemented by screens that can adapt to terminal dimensions.
type sizable interface {
	SetSize(w, h int)
}

// refreshable is implemented by screens that cache values derived from
// the catalog.
type refreshable interface {
	Refresh()
}

// KeyStore persists the API key between runs.
type KeyStore interface {
	Load() (string, error)
	Save(apiKey string) error
	Delete() error
}

type keyringStore struct{}

func (keyringStore) Load() (string, error)    { return keystore.Load() }
func (keyringStore) Save(apiKey string) error { return keystore.Save(apiKey) }
func (keyringStore) Delete() error            { return keystore.Delete() }

// Options wires the app to its collaborators. Zero values pick the
// production defaults.
type Options struct {
	// APIKey skips the keyring when set, typically from flags or env.
	APIKey string
	Client api.Options
	Logger *zap.Logger
	Store  KeyStore
	Open   bookdetail.OpenFunc
	Now    func() time.Time
}

// requestTimeout bounds each catalog load.
const requestTimeout = 30 * time.Second

type navTab struct {
	name   string
	zoneID string
}

var navTabs = []navTab{
	{"Finder", "nav-finder"},
	{"Chart", "nav-chart"},
	{"Catalog", "nav-catalog"},
}

// Model is the root application model.
type Model struct {
	opts   Options
	logger *zap.Logger
	store  KeyStore

	nav    *navstack.Model
	win    *window.Model
	client *api.Client
	state  *session.State

	spinner    spinner.Model
	keys       common.KeyMap
	help       help.Model
	loading    bool
	setupMode  bool
	setupScr   Screen
	width      int
	height     int
	activeTab  int
	confirm    common.ConfirmState
	alert      bubbleup.AlertModel
	loader     common.Loader
	keySource  string
	catalogRun bool
}

// keyringCheckMsg is returned after checking the keyring for an API key.
type keyringCheckMsg struct {
	apiKey string
	err    error
}

// catalogLoadedMsg is returned after a catalog load.
type catalogLoadedMsg struct {
	cats []books.Category
	err  error
}

// New creates the root application model.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Store == nil {
		opts.Store = keyringStore{}
	}
	if opts.Client.Logger == nil {
		opts.Client.Logger = opts.Logger
	}

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(common.SpinnerStyle),
	)
	w := window.New(120, 30, 0, 0)
	n := navstack.New(&w)

	alertModel := bubbleup.NewAlertModel(50, false, 3*time.Second).
		WithMinWidth(20).
		WithPosition(bubbleup.TopRightPosition).
		WithUnicodePrefix()

	alertModel.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       string(common.NotifySuccess),
		ForeColor: "#10B981", // ColorSuccess
		Prefix:    "✔",  // checkmark
	})

	return Model{
		opts:      opts,
		logger:    opts.Logger,
		store:     opts.Store,
		nav:       &n,
		win:       &w,
		state:     session.New(opts.Now),
		spinner:   s,
		keys:      common.Keys,
		help:      common.NewHelp(),
		loading:   true,
		setupMode: true,
		alert:     alertModel,
		loader:    common.NewLoader(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.opts.APIKey != "" {
		return func() tea.Msg { return keyringCheckMsg{apiKey: m.opts.APIKey} }
	}
	return tea.Batch(m.spinner.Tick, m.checkKeyringCmd())
}

func (m Model) checkKeyringCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		apiKey, err := store.Load()
		return keyringCheckMsg{apiKey: apiKey, err: err}
	}
}

func (m Model) loadCatalogCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		cats, err := books.LoadCatalog(ctx, client)
		return catalogLoadedMsg{cats: cats, err: err}
	}
}

func (m Model) newClient(apiKey string) *api.Client {
	return api.NewClient(apiKey, m.opts.Client)
}

// validateKey is the setup screen's check: a key that loads the catalog works.
func (m Model) validateKey() setup.CatalogFunc {
	opts := m.opts.Client
	return func(ctx context.Context, apiKey string) ([]books.Category, error) {
		return books.LoadCatalog(ctx, api.NewClient(apiKey, opts))
	}
}

// contentHeight returns the available height for screen content.
func (m Model) contentHeight() int {
	overhead := 5
	if m.help.ShowAll {
		overhead += 2
	}
	return m.height - overhead
}

func (m Model) pushScreen(title string, screen Screen) (Model, tea.Cmd) {
	if s, ok := screen.(sizable); ok && m.width > 0 {
		s.SetSize(m.width, m.contentHeight())
	}
	item := navstack.NavigationItem{Title: title, Model: screen}
	cmd := m.nav.Push(item)
	return m, cmd
}

// switchTab clears the navstack and pushes the given tab screen.
func (m Model) switchTab(idx int) (Model, tea.Cmd) {
	m.activeTab = idx
	_ = m.nav.Clear()
	return m.pushScreen(navTabs[idx].name, m.createTabScreen(idx))
}

func (m Model) createTabScreen(idx int) Screen {
	switch idx {
	case 1:
		return chart.New(m.state)
	case 2:
		return catalog.New(m.state)
	default:
		return finder.New(m.state, m.client)
	}
}

// enterTabs leaves setup and shows the finder.
func (m Model) enterTabs() (Model, tea.Cmd) {
	m.loading = false
	m.setupMode = false
	m.setupScr = nil
	return m.switchTab(0)
}

func (m Model) enterSetup() (Model, tea.Cmd) {
	m.loading = false
	m.setupMode = true
	m.client = nil
	_ = m.nav.Clear()
	s := setup.New(m.validateKey(), m.store.Save)
	s.SetSize(m.width, m.height)
	m.setupScr = s
	return m, s.Init()
}

func (m Model) resizeTop() {
	if top := m.nav.Top(); top != nil {
		if s, ok := top.Model.(sizable); ok {
			s.SetSize(m.width, m.contentHeight())
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	outAlert, alertCmd := m.alert.Update(msg)
	m.alert = outAlert.(bubbleup.AlertModel)

	next, cmd := m.update(msg)
	return next, tea.Batch(alertCmd, cmd)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case common.NotifyMsg:
		return m, m.alert.NewAlertCmd(string(msg.Level), msg.Message)

	case common.LoaderFrameMsg:
		if m.loader.Active() {
			return m, m.loader.Update()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.win.Width = msg.Width
		m.win.Height = msg.Height
		m.help.Width = msg.Width
		if m.setupMode && m.setupScr != nil {
			if s, ok := m.setupScr.(sizable); ok {
				s.SetSize(msg.Width, msg.Height)
			}
			return m, nil
		}
		m.resizeTop()
		return m, nil

	case keyringCheckMsg:
		if msg.err != nil || msg.apiKey == "" {
			if msg.err != nil && !errors.Is(msg.err, keystore.ErrNotFound) {
				m.logger.Warn("keyring unavailable", zap.Error(msg.err))
			}
			return m.enterSetup()
		}
		m.keySource = "keyring"
		if msg.apiKey == m.opts.APIKey {
			m.keySource = "config"
		}
		m.client = m.newClient(msg.apiKey)
		m.loading = true
		m.catalogRun = true
		return m, tea.Batch(m.loader.Start(), m.loadCatalogCmd())

	case catalogLoadedMsg:
		m.catalogRun = false
		m.loader.Stop()
		m.state.LoadCatalog(msg.cats, msg.err)
		if msg.err != nil {
			m.logger.Warn("catalog load failed", zap.Error(msg.err), zap.String("key_source", m.keySource))
			if errors.Is(msg.err, api.ErrUnauthorized) {
				nm, cmd := m.enterSetup()
				return nm, tea.Batch(cmd, common.NotifyErrCmd("Catalog", msg.err))
			}
		} else {
			m.logger.Info("catalog loaded", zap.Int("categories", len(msg.cats)))
		}

		var notify tea.Cmd
		if msg.err != nil {
			notify = common.NotifyErrCmd("Catalog", msg.err)
		}
		if m.loading {
			nm, cmd := m.enterTabs()
			return nm, tea.Batch(cmd, notify)
		}
		if top := m.nav.Top(); top != nil {
			if r, ok := top.Model.(refreshable); ok {
				r.Refresh()
			}
		}
		return m, notify

	case setup.SetupCompleteMsg:
		m.client = m.newClient(msg.APIKey)
		m.keySource = "setup"
		m.state.LoadCatalog(msg.Categories, nil)
		m.logger.Info("api key accepted", zap.Int("categories", len(msg.Categories)))
		nm, cmd := m.enterTabs()
		if msg.SaveErr != nil {
			m.logger.Warn("could not save api key", zap.Error(msg.SaveErr))
			return nm, tea.Batch(cmd, common.NotifyCmd(common.NotifyWarning, "Key works but was not saved to the keyring"))
		}
		return nm, tea.Batch(cmd, common.NotifyCmd(common.NotifySuccess, "API key saved"))

	case finder.ReloadCatalogMsg:
		if m.catalogRun || m.client == nil {
			return m, nil
		}
		m.catalogRun = true
		return m, tea.Batch(m.loadCatalogCmd(), common.NotifyCmd(common.NotifyInfo, "Reloading categories"))

	case finder.NavigateToBookMsg:
		screen := bookdetail.New(msg.Book, msg.List, msg.Date, m.opts.Open)
		nm, pushCmd := m.pushScreen(common.Truncate(msg.Book.Title, 30), screen)
		return nm, tea.Batch(pushCmd, screen.Init())

	case catalog.PickCategoryMsg:
		if !m.state.SelectCategory(msg.Key) {
			return m, nil
		}
		return m.switchTab(0)

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		if !m.setupMode {
			return m, m.nav.Update(msg)
		}
		if m.setupScr != nil {
			updated, cmd := m.setupScr.Update(msg)
			m.setupScr = updated.(Screen)
			return m, cmd
		}
		return m, nil

	case tea.MouseMsg:
		if m.setupMode || m.loading {
			return m, nil
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			for i, t := range navTabs {
				if zone.Get(t.zoneID).InBounds(msg) {
					return m.switchTab(i)
				}
			}
		}
		return m, m.nav.Update(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.setupMode && m.setupScr != nil {
		updated, cmd := m.setupScr.Update(msg)
		m.setupScr = updated.(Screen)
		return m, cmd
	}
	if !m.loading {
		return m, m.nav.Update(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.setupMode && m.setupScr != nil {
		updated, cmd := m.setupScr.Update(msg)
		m.setupScr = updated.(Screen)
		return m, cmd
	}
	if m.loading {
		return m, nil
	}

	if m.confirm.Active {
		if m.confirm.HandleKey(msg.String()) && m.confirm.Action == common.ConfirmForgetKey {
			return m.forgetKey()
		}
		return m, nil
	}

	if top := m.nav.Top(); top != nil {
		if f, ok := top.Model.(inputFocusable); ok && f.InputFocused() {
			return m, m.nav.Update(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if len(m.nav.StackSummary()) > 1 {
			cmd := m.nav.Pop()
			m.resizeTop()
			return m, cmd
		}
		return m, m.nav.Update(msg)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeTop()
		return m, nil
	case key.Matches(msg, m.keys.Forget):
		m.confirm = common.NewConfirm("Forget the saved NYT API key?", common.ConfirmForgetKey)
		return m, nil
	case key.Matches(msg, m.keys.Finder):
		return m.switchTab(0)
	case key.Matches(msg, m.keys.Chart):
		return m.switchTab(1)
	case key.Matches(msg, m.keys.Catalog):
		return m.switchTab(2)
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab((m.activeTab + 1) % len(navTabs))
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab((m.activeTab - 1 + len(navTabs)) % len(navTabs))
	}

	return m, m.nav.Update(msg)
}

// forgetKey deletes the stored key and returns to setup with a fresh state.
func (m Model) forgetKey() (tea.Model, tea.Cmd) {
	var notify tea.Cmd
	if err := m.store.Delete(); err != nil {
		m.logger.Warn("could not delete api key", zap.Error(err))
		notify = common.NotifyCmd(common.NotifyError, fmt.Sprintf("Could not forget key: %v", err))
	} else {
		m.logger.Info("api key forgotten")
	}
	m.state = session.New(m.opts.Now)
	m.opts.APIKey = ""
	nm, cmd := m.enterSetup()
	return nm, tea.Batch(cmd, notify)
}
