package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

func (m *ComposerModel) View() string {
	if m.mode == modeFilePicking {
		return m.filePickerView()
	}

	sections := []string{
		m.headerView(),
	}

	if m.comp.Kind().UsesTitle() {
		sections = append(sections, "  "+m.titleInput.View())
	}

	sections = append(sections, m.textarea.View())

	if m.popup.visible {
		sections = append(sections, m.popup.view())
	}

	if tags := m.comp.Hashtags(); len(tags) > 0 {
		sections = append(sections, m.hashtagView(tags))
	}

	if m.settings.UI.ShowAttachmentPanel && m.comp.AttachmentCount() > 0 {
		sections = append(sections, m.attachmentView())
	}

	if m.confirm.Active() {
		sections = append(sections, "  "+m.confirm.View())
	}

	sections = append(sections, m.footerView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ComposerModel) headerView() string {
	var tabs []string
	for _, k := range models.Kinds() {
		label := string(k)
		if k == m.comp.Kind() {
			tabs = append(tabs, ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(label))
		}
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	right := VisibilityStyle.Render("→ " + string(m.comp.Visibility()))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (m *ComposerModel) hashtagView(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag
	}
	return "  " + HashtagStyle.Render(strings.Join(parts, " "))
}

func (m *ComposerModel) attachmentView() string {
	limit := m.settings.Composer.MaxAttachments
	header := AttachmentHeaderStyle.Render(
		fmt.Sprintf("Attachments (%d/%d)", m.comp.AttachmentCount(), limit))

	lines := []string{"  " + header}
	for i, a := range m.comp.Attachments() {
		desc := a.MIMEType
		if a.Preview != nil {
			desc = a.Preview.Label()
		}
		lines = append(lines, "  "+AttachmentStyle.Render(
			fmt.Sprintf("%d. %s  %s  %s", i+1, a.Name, desc, humanize.Bytes(uint64(a.SizeBytes)))))
	}
	return strings.Join(lines, "\n")
}

func (m *ComposerModel) footerView() string {
	var status string
	switch {
	case m.comp.IsSubmitting():
		status = StatusInfoStyle.Render(m.spinner.View() + " publishing…")
	case m.statusText != "":
		text := m.statusText
		if m.width > 10 {
			text = wordwrap.String(text, m.width-4)
		}
		switch m.statusKind {
		case statusError:
			status = StatusErrorStyle.Render(text)
		case statusSuccess:
			status = StatusSuccessStyle.Render(text)
		default:
			status = StatusInfoStyle.Render(text)
		}
	}

	help := HelpStyle.Render(m.helpText())
	if status == "" {
		return help
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, help)
}

func (m *ComposerModel) helpText() string {
	keys := []string{
		"^s post",
		"^k kind",
		"^o audience",
		"^a attach",
	}
	if m.comp.AttachmentCount() > 0 {
		keys = append(keys, "^x remove")
	}
	if m.comp.Kind().UsesTitle() {
		keys = append(keys, "tab title/body")
	}
	keys = append(keys, "esc quit")
	return " " + strings.Join(keys, " • ")
}

func (m *ComposerModel) filePickerView() string {
	title := AttachmentHeaderStyle.Render("Attach a file")
	hint := HelpStyle.Render(" enter select • esc cancel")
	return lipgloss.JoinVertical(lipgloss.Left, " "+title, m.filepicker.View(), hint)
}
