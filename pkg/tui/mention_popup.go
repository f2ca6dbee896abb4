package tui

import (
	"strings"

	"github.com/unifeed/unifeed-cli/pkg/feed"
)

const maxPopupItems = 5

// mentionPopup is the autocomplete list shown while a mention trigger is
// active. It holds the suggestions for the trigger's current query; results
// for a superseded query are ignored.
type mentionPopup struct {
	visible  bool
	query    string
	users    []feed.User
	selected int
}

func (p *mentionPopup) show(query string, users []feed.User) {
	p.visible = len(users) > 0
	p.query = query
	p.users = users
	if len(users) > maxPopupItems {
		p.users = users[:maxPopupItems]
	}
	p.selected = 0
}

func (p *mentionPopup) hide() {
	p.visible = false
	p.users = nil
	p.selected = 0
}

func (p *mentionPopup) moveUp() {
	if p.visible && p.selected > 0 {
		p.selected--
	}
}

func (p *mentionPopup) moveDown() {
	if p.visible && p.selected < len(p.users)-1 {
		p.selected++
	}
}

// pick returns the selected username, if any.
func (p *mentionPopup) pick() (string, bool) {
	if !p.visible || p.selected >= len(p.users) {
		return "", false
	}
	return p.users[p.selected].Username, true
}

func (p *mentionPopup) view() string {
	if !p.visible {
		return ""
	}

	var lines []string
	for i, u := range p.users {
		label := "@" + u.Username
		if u.DisplayName != "" {
			label += "  " + u.DisplayName
		}
		if i == p.selected {
			lines = append(lines, PopupSelectedStyle.Render(label))
		} else {
			lines = append(lines, PopupItemStyle.Render(label))
		}
	}
	return PopupStyle.Render(strings.Join(lines, "\n"))
}
