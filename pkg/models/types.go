package models

import (
	"fmt"
	"strings"
)

// Kind is the authoring mode of a composed post. It selects which optional
// fields apply (title for notes and questions) and which attachment types the
// stager accepts.
type Kind string

const (
	KindPost     Kind = "post"
	KindNote     Kind = "note"
	KindQuestion Kind = "question"
	KindPhoto    Kind = "photo"
)

// Kinds returns all kinds in display order.
func Kinds() []Kind {
	return []Kind{KindPost, KindNote, KindQuestion, KindPhoto}
}

// ParseKind converts a user-supplied string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindPost:
		return KindPost, nil
	case KindNote:
		return KindNote, nil
	case KindQuestion:
		return KindQuestion, nil
	case KindPhoto:
		return KindPhoto, nil
	}
	return "", fmt.Errorf("invalid kind: %s (must be: post, note, question, or photo)", s)
}

// UsesTitle reports whether this kind carries a separate title field.
func (k Kind) UsesTitle() bool {
	return k == KindNote || k == KindQuestion
}

// Visibility is the audience scope attached to a submitted post.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityFollowers  Visibility = "followers"
	VisibilityUniversity Visibility = "university"
	VisibilityPrivate    Visibility = "private"
)

// Visibilities returns all visibility values in cycling order.
func Visibilities() []Visibility {
	return []Visibility{VisibilityPublic, VisibilityFollowers, VisibilityUniversity, VisibilityPrivate}
}

// ParseVisibility converts a user-supplied string to a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(s))) {
	case VisibilityPublic:
		return VisibilityPublic, nil
	case VisibilityFollowers:
		return VisibilityFollowers, nil
	case VisibilityUniversity:
		return VisibilityUniversity, nil
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	}
	return "", fmt.Errorf("invalid visibility: %s (must be: public, followers, university, or private)", s)
}

// Next returns the visibility following v in cycling order, wrapping around.
func (v Visibility) Next() Visibility {
	all := Visibilities()
	for i, vis := range all {
		if vis == v {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// MentionTrigger describes an in-progress, unterminated "@token" immediately
// before the cursor. It is ephemeral UI state, recomputed on every keystroke
// and cursor move, and never part of the submitted payload.
type MentionTrigger struct {
	Active       bool
	Query        string
	CursorOffset int
}
