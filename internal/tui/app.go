// Package tui provides the terminal user interface for the action items board.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/actionboard/internal/api"
	"github.com/hy4ri/actionboard/internal/config"
	"github.com/hy4ri/actionboard/internal/tui/logic"
	"github.com/hy4ri/actionboard/internal/tui/state"
	"github.com/hy4ri/actionboard/internal/tui/ui"
)

// App is the main Bubble Tea model for the application.
// State is shared by the handler, which mutates it, and the renderer, which only reads it.
type App struct {
	state    *state.State
	handler  *logic.Handler
	renderer *ui.Renderer
}

// NewApp creates a new App.
func NewApp(client *api.Client, cfg *config.Config) *App {
	s := state.NewState(client, cfg)
	return &App{
		state:    s,
		handler:  logic.NewHandler(s),
		renderer: ui.NewRenderer(s),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.handler.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.handler.Update(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	return a.renderer.View()
}

// State exposes the shared state, mainly for tests.
func (a *App) State() *state.State {
	return a.state
}
