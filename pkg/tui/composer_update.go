package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unifeed/unifeed-cli/pkg/attachments"
	"github.com/unifeed/unifeed-cli/pkg/composer"
	"github.com/unifeed/unifeed-cli/pkg/feed"
	"github.com/unifeed/unifeed-cli/pkg/files"
	"github.com/unifeed/unifeed-cli/pkg/models"
)

func (m *ComposerModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case StatusMsg:
		return m.setStatus(msg.Text, msg.Type)

	case clearStatusMsg:
		m.statusText = ""
		return nil

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case suggestionsMsg:
		return m.handleSuggestions(msg)

	case spinner.TickMsg:
		if m.comp.IsSubmitting() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
		return nil
	}

	if m.mode == modeFilePicking {
		return m.updateFilePicker(msg)
	}
	return nil
}

func (m *ComposerModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// The quit confirmation swallows keys while active.
	if m.confirm.Active() {
		return m.confirm.Update(msg)
	}

	if m.mode == modeFilePicking {
		if msg.String() == "esc" {
			m.mode = modeEditing
			return nil
		}
		return m.updateFilePicker(msg)
	}

	// Mention popup navigation takes priority over text input.
	if m.popup.visible {
		switch msg.String() {
		case "up":
			m.popup.moveUp()
			return nil
		case "down":
			m.popup.moveDown()
			return nil
		case "tab", "enter":
			if username, ok := m.popup.pick(); ok {
				m.insertMention(username)
				m.popup.hide()
				return nil
			}
		case "esc":
			m.popup.hide()
			return nil
		}
	}

	switch msg.String() {
	case "ctrl+c":
		return m.requestQuit()

	case "esc":
		return m.requestQuit()

	case "ctrl+k":
		return m.cycleKind()

	case "ctrl+o":
		m.comp.SetVisibility(m.comp.Visibility().Next())
		return nil

	case "ctrl+a":
		m.mode = modeFilePicking
		return m.filepicker.Init()

	case "ctrl+x":
		if n := m.comp.AttachmentCount(); n > 0 {
			m.comp.RemoveAttachment(n - 1)
			return m.setStatus("attachment removed", statusInfo)
		}
		return nil

	case "ctrl+s":
		return m.submit()

	case "tab":
		if m.comp.Kind().UsesTitle() {
			m.toggleFocus()
			return nil
		}
	}

	return m.updateInputs(msg)
}

// updateInputs routes a key to the focused widget and reruns the analysis so
// derived fields and the mention trigger track every keystroke and cursor
// move.
func (m *ComposerModel) updateInputs(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	if m.titleInput.Focused() {
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.comp.SetTitle(m.titleInput.Value())
		return cmd
	}

	prevTrigger := m.comp.Trigger()

	m.textarea, cmd = m.textarea.Update(msg)
	m.comp.SetText(m.textarea.Value(), m.textareaCursor())

	trigger := m.comp.Trigger()
	switch {
	case !trigger.Active:
		m.popup.hide()
	case trigger.Query != prevTrigger.Query || !prevTrigger.Active:
		return tea.Batch(cmd, m.fetchSuggestions(trigger.Query))
	}
	return cmd
}

func (m *ComposerModel) toggleFocus() {
	if m.titleInput.Focused() {
		m.titleInput.Blur()
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
		m.titleInput.Focus()
	}
}

// cycleKind switches the authoring mode in display order. Text and staged
// attachments survive the switch.
func (m *ComposerModel) cycleKind() tea.Cmd {
	kinds := models.Kinds()
	current := m.comp.Kind()
	for i, k := range kinds {
		if k == current {
			next := kinds[(i+1)%len(kinds)]
			m.comp.SetKind(next)
			if !next.UsesTitle() && m.titleInput.Focused() {
				m.toggleFocus()
			}
			return nil
		}
	}
	m.comp.SetKind(kinds[0])
	return nil
}

func (m *ComposerModel) updateFilePicker(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)

	if ok, path := m.filepicker.DidSelectFile(msg); ok {
		m.mode = modeEditing
		if err := m.comp.Attach(path); err != nil {
			if rej, isRej := attachments.AsRejection(err); isRej {
				return tea.Batch(cmd, m.setStatus(rej.Error(), statusError))
			}
			return tea.Batch(cmd, m.setStatus(err.Error(), statusError))
		}
		return tea.Batch(cmd, m.setStatus("attached "+path, statusSuccess))
	}
	return cmd
}

// insertMention replaces the in-progress "@query" before the cursor with the
// chosen username and a trailing space.
func (m *ComposerModel) insertMention(username string) {
	trigger := m.comp.Trigger()
	if !trigger.Active {
		return
	}

	runes := []rune(m.textarea.Value())
	cursor := trigger.CursorOffset
	start := cursor - len([]rune(trigger.Query)) - 1 // include the '@'
	if start < 0 || cursor > len(runes) {
		return
	}

	completed := string(runes[:start]) + "@" + username + " " + string(runes[cursor:])
	target := start + len([]rune(username)) + 2

	m.setTextareaValue(completed, target)
}

// setTextareaValue replaces the textarea content and walks the cursor to the
// given rune offset. SetValue leaves the cursor at the end, so the walk goes
// upward row by row and then sets the column.
func (m *ComposerModel) setTextareaValue(value string, cursor int) {
	m.textarea.SetValue(value)

	lines := strings.Split(value, "\n")
	row, col := 0, cursor
	for row < len(lines)-1 && col > len([]rune(lines[row])) {
		col -= len([]rune(lines[row])) + 1
		row++
	}
	for m.textarea.Line() > row {
		m.textarea.CursorUp()
	}
	m.textarea.SetCursor(col)

	m.comp.SetText(value, cursor)
}

func (m *ComposerModel) fetchSuggestions(query string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		users, err := client.SearchUsers(ctx, query)
		return suggestionsMsg{query: query, users: users, err: err}
	}
}

func (m *ComposerModel) handleSuggestions(msg suggestionsMsg) tea.Cmd {
	trigger := m.comp.Trigger()
	if !trigger.Active {
		m.popup.hide()
		return nil
	}
	if trigger.Query != msg.query {
		// Stale reply for a superseded query.
		return nil
	}
	if msg.err != nil {
		m.logger.WithError(msg.err).Debug("mention search failed")
		m.popup.hide()
		return nil
	}
	m.popup.show(msg.query, msg.users)
	return nil
}

// submit starts the submission pipeline in the background. While it is in
// flight the composer refuses further submits, so rapid repeated presses
// cause exactly one network call.
func (m *ComposerModel) submit() tea.Cmd {
	req, err := m.comp.BeginSubmit()
	if err != nil {
		switch {
		case errors.Is(err, composer.ErrSubmitPending):
			return m.setStatus(err.Error(), statusInfo)
		case errors.Is(err, composer.ErrEmptyPost):
			return m.setStatus(err.Error(), statusError)
		default:
			return m.setStatus(err.Error(), statusError)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.submitCancel = cancel

	client := m.client
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		resp, err := client.CreatePost(ctx, req)
		return submitResultMsg{resp: resp, err: err}
	})
}

func (m *ComposerModel) handleSubmitResult(msg submitResultMsg) tea.Cmd {
	if m.submitCancel != nil {
		m.submitCancel()
		m.submitCancel = nil
	}
	if m.quitting {
		// The surface was discarded while the call was in flight; the
		// state object is gone as far as the user is concerned.
		return nil
	}

	m.comp.FinishSubmit(msg.err)

	if msg.err != nil {
		text := msg.err.Error()
		if apiErr, ok := feed.AsAPIError(msg.err); ok {
			text = apiErr.UserMessage()
		}
		return m.setStatus(text, statusError)
	}

	m.syncFromComposer()

	if m.restoredDraft != "" {
		if err := files.DeleteDraft(m.restoredDraft); err != nil {
			m.logger.WithError(err).Warn("failed to delete submitted draft")
		}
		m.restoredDraft = ""
	}

	status := "published post " + msg.resp.ID
	if m.settings.UI.CopyPostIDOnSubmit {
		if err := clipboard.WriteAll(msg.resp.ID); err == nil {
			status += " (id copied)"
		}
	}
	return m.setStatus(status, statusSuccess)
}

// requestQuit starts the quit flow: an empty composer quits immediately, a
// non-empty one offers to save a draft first.
func (m *ComposerModel) requestQuit() tea.Cmd {
	if m.comp.Empty() || !m.settings.UI.OfferDraftOnQuit {
		return m.quit(false)
	}

	m.confirm.Show(
		ConfirmationConfig{
			Message:  "Save draft before quitting?",
			YesLabel: "Save",
			NoLabel:  "Discard",
		},
		func() tea.Cmd { return m.quit(true) },
		func() tea.Cmd { return m.quit(false) },
	)
	return nil
}

// quit tears the surface down: optionally saves a draft, cancels any
// in-flight submission, and releases staged preview handles.
func (m *ComposerModel) quit(saveDraft bool) tea.Cmd {
	m.quitting = true

	if m.submitCancel != nil {
		m.submitCancel()
		m.submitCancel = nil
	}

	if saveDraft {
		if _, err := files.SaveDraft(m.comp.Draft()); err != nil {
			m.logger.WithError(err).Error("failed to save draft")
		} else if m.restoredDraft != "" {
			// The old copy is superseded by the one just saved.
			if err := files.DeleteDraft(m.restoredDraft); err != nil {
				m.logger.WithError(err).Warn("failed to delete superseded draft")
			}
		}
	}

	m.comp.Discard()
	return tea.Quit
}
