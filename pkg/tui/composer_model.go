package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/unifeed/unifeed-cli/pkg/attachments"
	"github.com/unifeed/unifeed-cli/pkg/composer"
	"github.com/unifeed/unifeed-cli/pkg/feed"
	"github.com/unifeed/unifeed-cli/pkg/files"
	"github.com/unifeed/unifeed-cli/pkg/models"
)

// composerMode is the input mode of the composing surface
type composerMode int

const (
	// modeEditing is the default authoring mode
	modeEditing composerMode = iota
	// modeFilePicking is when the attachment file picker is active
	modeFilePicking
)

// ComposerModel is the composing surface. It owns exactly one Composer
// instance and is the only writer to it; the submission runs in the
// background with its outcome applied back here.
type ComposerModel struct {
	comp     *composer.Composer
	client   *feed.Client
	logger   *logrus.Logger
	settings *models.Settings

	mode       composerMode
	textarea   textarea.Model
	titleInput textinput.Model
	filepicker filepicker.Model
	spinner    spinner.Model
	popup      mentionPopup
	confirm    *ConfirmationModel

	// submitCancel aborts an in-flight submission when the surface is
	// discarded, so a late response cannot touch disposed state.
	submitCancel context.CancelFunc

	restoredDraft string // filename of the restored draft, deleted on submit
	quitting      bool

	statusText string
	statusKind statusType

	width  int
	height int
}

// NewComposerModel creates the composing surface with the configured
// defaults.
func NewComposerModel(settings *models.Settings, client *feed.Client, logger *logrus.Logger) *ComposerModel {
	ta := textarea.New()
	ta.Placeholder = "What's happening on campus?"
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(72)
	ta.SetHeight(8)
	ta.Focus()

	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 120
	ti.Width = 70

	fp := filepicker.New()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	comp := composer.New(
		settings.Composer.DefaultKind,
		settings.Composer.DefaultVisibility,
		attachments.LimitsFromSettings(settings.Composer),
	)
	comp.Open(settings.Composer.DefaultKind)

	return &ComposerModel{
		comp:       comp,
		client:     client,
		logger:     logger,
		settings:   settings,
		textarea:   ta,
		titleInput: ti,
		filepicker: fp,
		spinner:    sp,
		confirm:    NewConfirmation(),
	}
}

func (m *ComposerModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}

	if m.settings.UI.OfferDraftOnQuit {
		if d, name, err := files.LatestDraft(); err == nil && d != nil {
			if errs := m.comp.RestoreDraft(d); len(errs) > 0 {
				m.logger.WithField("errors", len(errs)).Warn("some draft attachments could not be restored")
			}
			m.restoredDraft = name
			m.syncFromComposer()
			cmds = append(cmds, m.setStatus("restored draft from "+d.SavedAt.Format("Jan 2 15:04"), statusInfo))
		}
	}

	return tea.Batch(cmds...)
}

// SetSize adjusts the layout to the window.
func (m *ComposerModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	taWidth := width - 6
	if taWidth > 100 {
		taWidth = 100
	}
	if taWidth < 20 {
		taWidth = 20
	}
	m.textarea.SetWidth(taWidth)
	m.titleInput.Width = taWidth - 2

	taHeight := height - 14
	if taHeight < 4 {
		taHeight = 4
	}
	if taHeight > 16 {
		taHeight = 16
	}
	m.textarea.SetHeight(taHeight)
}

// syncFromComposer pushes composer content into the input widgets after a
// restore or reset.
func (m *ComposerModel) syncFromComposer() {
	m.textarea.SetValue(m.comp.Text())
	m.titleInput.SetValue(m.comp.Title())
}

// textareaCursor derives the absolute rune offset of the textarea cursor
// from its row and in-row position.
func (m *ComposerModel) textareaCursor() int {
	row := m.textarea.Line()
	info := m.textarea.LineInfo()
	lines := strings.Split(m.textarea.Value(), "\n")

	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += len([]rune(lines[i])) + 1
	}
	return offset + info.StartColumn + info.CharOffset
}

// setStatus updates the status bar and schedules it to clear.
func (m *ComposerModel) setStatus(text string, kind statusType) tea.Cmd {
	m.statusText = text
	m.statusKind = kind
	return statusTimeout()
}
