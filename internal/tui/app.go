package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/slide/internal/domain"
	"github.com/mmcdole/slide/internal/service"
	"github.com/mmcdole/slide/internal/slider"
	"github.com/mmcdole/slide/internal/tui/components"
	"github.com/mmcdole/slide/internal/tui/styles"
)

// Opener hands an image URL to something outside the terminal
type Opener interface {
	Open(url string) error
}

// Options configures a Model
type Options struct {
	Query      domain.Query
	SourceURL  string // Request URL, shown in the header
	Refresh    bool   // Bypass the listing cache
	Author     string // Jump to the best author match once loaded
	ShowHelp   bool   // Start with full help expanded
	StatusTime time.Duration
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Slider state, changed only through slider.Reduce
	Slider slider.State

	// Services
	GallerySvc *service.GalleryService
	Opener     Opener
	logger     *slog.Logger

	opts Options

	// Lifetime of the component; cancelled on teardown
	ctx    context.Context
	cancel context.CancelFunc

	// UI Components
	Picker  components.Picker
	Spinner spinner.Model
	Help    help.Model

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg   string
	StatusIsErr bool
	FromCache   bool
}

// NewModel creates a model that is already Loading: the fetch it will run
// is registered with the slider here, and Init starts it.
func NewModel(ctx context.Context, gallery *service.GalleryService, opener Opener, logger *slog.Logger, opts Options) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.StatusTime <= 0 {
		opts.StatusTime = 3 * time.Second
	}

	lifeCtx, cancel := context.WithCancel(ctx)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.SpinnerStyle

	h := help.New()
	h.ShowAll = opts.ShowHelp

	state := slider.Reduce(slider.New(), slider.FetchStarted{RequestID: nextRequestID()})

	return Model{
		Slider:     state,
		GallerySvc: gallery,
		Opener:     opener,
		logger:     logger,
		opts:       opts,
		ctx:        lifeCtx,
		cancel:     cancel,
		Picker:     components.NewPicker(),
		Spinner:    sp,
		Help:       h,
	}
}

// Init starts the single listing fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		FetchImagesCmd(m.ctx, m.GallerySvc, m.opts.Query, m.Slider.RequestID, m.opts.Refresh),
		m.Spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case spinner.TickMsg:
		if m.Slider.Phase != slider.PhaseLoading || m.Slider.Closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ImagesLoadedMsg:
		before := m.Slider
		m.Slider = slider.Reduce(m.Slider, slider.FetchSucceeded{RequestID: msg.RequestID, Images: msg.Images})
		if m.Slider.Phase == before.Phase {
			m.logger.Debug("dropped listing result", "request", msg.RequestID, "phase", before.Phase, "closed", before.Closed)
			return m, nil
		}
		m.FromCache = msg.FromCache
		m.logger.Info("listing ready", "count", m.Slider.Len(), "fromCache", msg.FromCache)
		return m, m.jumpToAuthor()

	case ImagesFailedMsg:
		before := m.Slider
		m.Slider = slider.Reduce(m.Slider, slider.FetchFailed{RequestID: msg.RequestID, Err: msg.Err})
		if m.Slider.Phase == before.Phase {
			m.logger.Debug("dropped listing failure", "request", msg.RequestID, "error", msg.Err)
			return m, nil
		}
		m.logger.Error("listing failed", "error", msg.Err)
		return m, nil

	case OpenedMsg:
		m.StatusMsg = "Opened " + msg.URL
		m.StatusIsErr = false
		return m, ClearStatusCmd(m.opts.StatusTime)

	case ErrMsg:
		m.logger.Error("command failed", "error", msg)
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(m.opts.StatusTime)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(m.opts.StatusTime)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// dispatch applies a slider event
func (m *Model) dispatch(ev slider.Event) {
	m.Slider = slider.Reduce(m.Slider, ev)
}

// teardown ends the component: the in-flight fetch is cancelled and any
// late result is ignored by the slider.
func (m *Model) teardown() {
	m.cancel()
	m.dispatch(slider.Teardown{})
	m.logger.Info("slider torn down", "phase", m.Slider.Phase)
}

// jumpToAuthor applies the -author option once the listing is Ready
func (m *Model) jumpToAuthor() tea.Cmd {
	if m.opts.Author == "" || m.Slider.IsEmpty() {
		return nil
	}

	author := m.opts.Author
	idx, ok := service.NewSearchService(m.Slider.Images).Best(author)
	if !ok {
		return func() tea.Msg {
			return StatusMsg{Message: fmt.Sprintf("No image by %q", author), IsError: true}
		}
	}
	m.dispatch(slider.JumpTo{Index: idx})
	return nil
}

// imageTitles returns the picker titles for the loaded listing
func (m Model) imageTitles() []string {
	titles := make([]string, m.Slider.Len())
	for i, img := range m.Slider.Images {
		titles[i] = img.GetTitle()
	}
	return titles
}
