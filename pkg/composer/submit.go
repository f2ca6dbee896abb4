package composer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/unifeed/unifeed-cli/pkg/feed"
)

var (
	// ErrEmptyPost is the local precondition failure: nothing to send, so
	// no network call is made.
	ErrEmptyPost = errors.New("nothing to post: write some text or attach a file")

	// ErrSubmitPending refuses a second submission while one is in flight.
	ErrSubmitPending = errors.New("a submission is already in progress")
)

// BeginSubmit validates the composer is submittable, flips the re-entrancy
// guard and builds the outgoing payload. The caller must pass the payload to
// feed.Client.CreatePost and then report the outcome via FinishSubmit; media
// readers are closed by CreatePost.
//
// Splitting begin/finish lets an event-driven surface run the network call in
// the background while its update loop keeps the guard visible.
func (c *Composer) BeginSubmit() (feed.CreatePostRequest, error) {
	if c.submitting {
		return feed.CreatePostRequest{}, ErrSubmitPending
	}
	if c.Empty() {
		return feed.CreatePostRequest{}, ErrEmptyPost
	}

	req, err := c.buildRequest()
	if err != nil {
		return feed.CreatePostRequest{}, err
	}

	c.submitting = true
	return req, nil
}

// FinishSubmit applies the terminal transition for the submission whose
// payload came from BeginSubmit. On success the content is reset to an empty
// open composer (kind and visibility are kept for the next post); on failure
// everything is left intact so the user can retry without retyping.
func (c *Composer) FinishSubmit(err error) {
	c.submitting = false
	if err == nil {
		c.clearContent()
	}
}

// Submit runs the whole pipeline synchronously: precondition check, payload
// shaping, the network call, and the terminal state transition.
func (c *Composer) Submit(ctx context.Context, client *feed.Client) (*feed.CreatePostResponse, error) {
	req, err := c.BeginSubmit()
	if err != nil {
		return nil, err
	}

	resp, err := client.CreatePost(ctx, req)
	c.FinishSubmit(err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// buildRequest shapes the payload. For kinds with a title, the outgoing text
// is "title\n\nbody" so a single free-text field carries the structured
// shape over the wire.
func (c *Composer) buildRequest() (feed.CreatePostRequest, error) {
	text := trimmed(c.text)
	if c.kind.UsesTitle() {
		if title := trimmed(c.title); title != "" {
			text = title + "\n\n" + text
		}
	}

	req := feed.CreatePostRequest{
		Kind:       c.kind,
		Text:       text,
		Visibility: c.visibility,
		Hashtags:   c.Hashtags(),
	}

	for _, a := range c.stager.List() {
		f, err := os.Open(a.Path)
		if err != nil {
			feedCloseAll(req.Media)
			return feed.CreatePostRequest{}, fmt.Errorf("attachment %s is no longer readable: %w", a.Name, err)
		}
		req.Media = append(req.Media, feed.Upload{
			Name:        a.Name,
			ContentType: a.MIMEType,
			Reader:      f,
		})
	}

	return req, nil
}

func feedCloseAll(media []feed.Upload) {
	for _, m := range media {
		if f, ok := m.Reader.(*os.File); ok {
			f.Close()
		}
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
