package composer

import (
	"github.com/unifeed/unifeed-cli/pkg/attachments"
	"github.com/unifeed/unifeed-cli/pkg/models"
	"github.com/unifeed/unifeed-cli/pkg/textscan"
)

// Composer is the authoring state for one not-yet-submitted post. Each
// composing surface owns exactly one instance; there is no shared process-wide
// state. Hashtags and mentions are always derived from the text by a whole
// rescan, never patched incrementally, so they can never drift from it.
type Composer struct {
	kind       models.Kind
	visibility models.Visibility
	text       string
	title      string
	cursor     int

	hashtags []string
	mentions []string
	trigger  models.MentionTrigger

	stager *attachments.Stager

	open       bool
	submitting bool
}

// New creates a closed composer with the given defaults.
func New(kind models.Kind, visibility models.Visibility, limits attachments.Limits) *Composer {
	return &Composer{
		kind:       kind,
		visibility: visibility,
		stager:     attachments.NewStager(kind, limits),
	}
}

// Open activates the composer. Reopening a surface that still holds content
// keeps the text and staged attachments; only the kind is set to the request.
func (c *Composer) Open(kind models.Kind) {
	c.open = true
	c.SetKind(kind)
}

// Close deactivates the surface without losing content, so it can be
// re-focused later. Use Discard to drop content.
func (c *Composer) Close() {
	c.open = false
}

// Discard closes the composer and drops all content, releasing every staged
// preview handle.
func (c *Composer) Discard() {
	c.clearContent()
	c.open = false
}

// IsOpen reports whether the composing surface is active.
func (c *Composer) IsOpen() bool {
	return c.open
}

// IsSubmitting reports whether a submission is in flight. While true, submit
// attempts are refused; the UI disables the trigger.
func (c *Composer) IsSubmitting() bool {
	return c.submitting
}

// SetText replaces the body text and reruns the full analysis for the new
// cursor position (a rune offset).
func (c *Composer) SetText(text string, cursor int) {
	c.text = text
	c.cursor = cursor
	c.reanalyze()
}

// MoveCursor recomputes the mention trigger for a cursor move without a text
// change, e.g. clicking elsewhere in already-typed text.
func (c *Composer) MoveCursor(cursor int) {
	c.cursor = cursor
	c.trigger = textscan.TriggerAt(c.text, cursor)
}

// SetTitle sets the optional title. It only reaches the payload for kinds
// that use one.
func (c *Composer) SetTitle(title string) {
	c.title = title
}

// SetKind switches the authoring mode. Text, title and staged attachments
// are preserved: deciding mid-typing that a post is really a question must
// not lose work. Only future attachment validation and payload shaping
// change.
func (c *Composer) SetKind(kind models.Kind) {
	c.kind = kind
	c.stager.SetKind(kind)
}

// SetVisibility sets the audience scope of the eventual post.
func (c *Composer) SetVisibility(v models.Visibility) {
	c.visibility = v
}

// Attach validates and stages one file.
func (c *Composer) Attach(path string) error {
	return c.stager.Add(path)
}

// AttachAll stages a multi-file selection, returning one error per rejected
// file while keeping the accepted ones.
func (c *Composer) AttachAll(paths []string) []error {
	return c.stager.AddAll(paths)
}

// RemoveAttachment removes the staged entry at index.
func (c *Composer) RemoveAttachment(index int) {
	c.stager.Remove(index)
}

// Kind returns the active authoring mode.
func (c *Composer) Kind() models.Kind { return c.kind }

// Visibility returns the audience scope.
func (c *Composer) Visibility() models.Visibility { return c.visibility }

// Text returns the canonical body text.
func (c *Composer) Text() string { return c.text }

// Title returns the optional title.
func (c *Composer) Title() string { return c.title }

// Cursor returns the last reported cursor offset.
func (c *Composer) Cursor() int { return c.cursor }

// Hashtags returns the tags derived from the current text, without '#'.
func (c *Composer) Hashtags() []string {
	out := make([]string, len(c.hashtags))
	copy(out, c.hashtags)
	return out
}

// Mentions returns the users mentioned anywhere in the text.
func (c *Composer) Mentions() []string {
	out := make([]string, len(c.mentions))
	copy(out, c.mentions)
	return out
}

// Trigger returns the current mention-autocomplete trigger.
func (c *Composer) Trigger() models.MentionTrigger {
	return c.trigger
}

// Attachments returns the staged attachments in order.
func (c *Composer) Attachments() []attachments.Attachment {
	return c.stager.List()
}

// AttachmentCount returns the number of staged attachments.
func (c *Composer) AttachmentCount() int {
	return c.stager.Len()
}

// Empty reports whether the composer holds nothing submittable.
func (c *Composer) Empty() bool {
	return trimmed(c.text) == "" && c.stager.Len() == 0
}

// Draft snapshots the current content for persistence.
func (c *Composer) Draft() *models.Draft {
	d := &models.Draft{
		Kind:       c.kind,
		Visibility: c.visibility,
		Title:      c.title,
		Text:       c.text,
	}
	for _, a := range c.stager.List() {
		d.Attachments = append(d.Attachments, a.Path)
	}
	return d
}

// RestoreDraft loads saved content into the composer, restaging the draft's
// attachments. Files that no longer validate are reported and skipped.
func (c *Composer) RestoreDraft(d *models.Draft) []error {
	c.clearContent()
	c.kind = d.Kind
	if c.kind == "" {
		c.kind = models.KindPost
	}
	c.stager.SetKind(c.kind)
	if d.Visibility != "" {
		c.visibility = d.Visibility
	}
	c.title = d.Title
	c.SetText(d.Text, len([]rune(d.Text)))
	return c.stager.AddAll(d.Attachments)
}

// clearContent wipes text, title, derived fields and attachments, keeping
// kind and visibility for the next post.
func (c *Composer) clearContent() {
	c.text = ""
	c.title = ""
	c.cursor = 0
	c.hashtags = nil
	c.mentions = nil
	c.trigger = models.MentionTrigger{}
	c.stager.ReleaseAll()
}

func (c *Composer) reanalyze() {
	a := textscan.Analyze(c.text, c.cursor)
	c.hashtags = a.Hashtags
	c.mentions = a.Mentions
	c.trigger = a.Trigger
}
