package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/unifeed/unifeed-cli/pkg/feed"
	"github.com/unifeed/unifeed-cli/pkg/models"
)

// App is the top-level bubbletea model. The composing surface owns its
// Composer instance; nothing is shared process-wide.
type App struct {
	composer *ComposerModel
	width    int
	height   int
}

// NewApp wires the composing surface to the feed client.
func NewApp(settings *models.Settings, client *feed.Client, logger *logrus.Logger) *App {
	return &App{
		composer: NewComposerModel(settings, client, logger),
	}
}

func (a *App) Init() tea.Cmd {
	return a.composer.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.composer.SetSize(msg.Width, msg.Height)
		return a, nil
	}

	cmd := a.composer.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	return a.composer.View()
}

// statusTimeout schedules the status bar to clear.
func statusTimeout() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
