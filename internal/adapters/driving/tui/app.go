package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/views/analyze"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/views/result"
	"github.com/custodia-labs/bizlens-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/bizlens-cli/internal/core/domain"
	"github.com/custodia-labs/bizlens-cli/internal/render"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView     *menu.View
	analyzeView  *analyze.View
	resultView   *result.View
	historyView  *history.View
	settingsView *settings.View

	// updates receives orchestrator snapshots.
	updates <-chan domain.AnalysisStatus

	// status is the latest orchestrator snapshot.
	status domain.AnalysisStatus

	// health is the latest service health, nil until checked.
	health    *domain.ServiceHealth
	healthErr error

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		analyzeView:  analyze.NewView(s, km, ports.Analysis, ports.Form),
		resultView:   result.NewView(s, render.NewRegistry()),
		historyView:  history.NewView(s, ports.History, ports.Analysis),
		settingsView: settings.NewView(s, ports.Settings),
		updates:      ports.Analysis.Subscribe(),
		status:       ports.Analysis.Status(),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.analyzeView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It loads history once, checks service health and starts listening for
// orchestrator snapshots.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("bizlens"),
		a.historyView.Refresh(),
		a.checkHealth(),
		a.listen(),
	)
}

// listen waits for the next orchestrator snapshot.
func (a *App) listen() tea.Cmd {
	updates := a.updates
	ctx := a.ctx
	return func() tea.Msg {
		select {
		case status, ok := <-updates:
			if !ok {
				return nil
			}
			return messages.StatusChanged{Status: status}
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *App) checkHealth() tea.Cmd {
	svc := a.ports.Health
	if svc == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		health, err := svc.Check(ctx)
		return messages.HealthChecked{Health: health, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			if msg.String() == "?" {
				a.currentView = messages.ViewHelp
				return a, nil
			}
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewAnalyze:
			a.analyzeView, cmd = a.analyzeView.Update(msg)
		case messages.ViewResult:
			a.resultView, cmd = a.resultView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewAnalyze:
			a.analyzeView.Sync()
			return a, a.analyzeView.Init()
		case messages.ViewResult:
			a.resultView.SetStatus(a.ports.Analysis.Status())
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewSettings:
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.AnalysisCompleted:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
		a.setStatus(msg.Status)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.currentView = messages.ViewResult
		return a, cmd

	case messages.AnalysisLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		if msg.Err != nil {
			a.err = msg.Err
			return a, cmd
		}
		a.err = nil
		a.setStatus(msg.Status)
		a.currentView = messages.ViewResult
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.StatusChanged:
		a.setStatus(msg.Status)
		return a, a.listen()

	case messages.HealthChecked:
		a.health = msg.Health
		a.healthErr = msg.Err
		return a, nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		a.analyzeView, cmd = a.analyzeView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewAnalyze {
			a.analyzeView, cmd = a.analyzeView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) setStatus(status domain.AnalysisStatus) {
	a.status = status
	a.resultView.SetStatus(status)
}

// View implements tea.Model.
// It renders the current view.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View() + "\n\n" + a.viewHealth()
	case messages.ViewAnalyze:
		return a.analyzeView.View()
	case messages.ViewResult:
		return a.resultView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHealth() string {
	switch {
	case a.healthErr != nil:
		return a.styles.Error.Render("Service unreachable: " + a.healthErr.Error())
	case a.health == nil:
		return a.styles.Muted.Render("Service: checking...")
	case a.health.Healthy():
		return a.styles.Success.Render("Service: " + a.health.Status)
	default:
		return a.styles.Warning.Render("Service: " + a.health.Status)
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  ?           Help
  q           Quit

Analyze:
  tab/↓       Next field
  shift+tab/↑ Previous field
  space/←/→   Change option
  enter       Run analysis

Result:
  j/k, ↑/↓    Scroll
  g/G         Top/bottom
  n           New analysis
  h           History

History:
  j/k, ↑/↓    Navigate analyses
  enter       Open analysis
  r           Refresh

Settings:
  enter       Edit value
  d           Reset to default

[esc] back to menu`
}

// Run starts the TUI application.
// This blocks until the user exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Status returns the latest orchestrator snapshot.
func (a *App) Status() domain.AnalysisStatus {
	return a.status
}

// Health returns the latest service health, or nil.
func (a *App) Health() *domain.ServiceHealth {
	return a.health
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received window dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.analyzeView.SetDimensions(width, height)
	a.resultView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
