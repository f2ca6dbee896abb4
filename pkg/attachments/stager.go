package attachments

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

// Stager owns the ordered list of staged attachments for one composer. It
// validates files on the way in and guarantees preview handles are released
// on removal or discard.
type Stager struct {
	kind   models.Kind
	limits Limits
	list   []Attachment
}

// NewStager creates a stager for the given kind.
func NewStager(kind models.Kind, limits Limits) *Stager {
	return &Stager{kind: kind, limits: limits}
}

// SetKind switches the validation rules for future adds. Already staged
// attachments are kept: they satisfied the rules in force when added.
func (s *Stager) SetKind(kind models.Kind) {
	s.kind = kind
}

// Add validates and stages a single file. A returned *RejectedError means the
// file was refused; any other error means it could not be inspected at all.
func (s *Stager) Add(path string) error {
	name := filepath.Base(path)

	if len(s.list) >= s.limits.MaxCount {
		return &RejectedError{Name: name, Reason: ReasonLimitReached}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stage %s: %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot stage %s: is a directory", name)
	}

	mimeType, err := detectMIMEType(path)
	if err != nil {
		return fmt.Errorf("cannot stage %s: %w", name, err)
	}

	if err := s.limits.validate(s.kind, name, mimeType, info.Size()); err != nil {
		return err
	}

	att := Attachment{
		Name:      name,
		Path:      path,
		MIMEType:  mimeType,
		SizeBytes: info.Size(),
	}

	// Only image and video entries get a preview handle.
	if isImage(mimeType) || isVideo(mimeType) {
		if p, err := newPreview(path, mimeType); err == nil {
			att.Preview = p
		}
	}

	s.list = append(s.list, att)
	return nil
}

// AddAll stages every file it can from a multi-file selection or drop,
// collecting one error per rejected file. A failing file never aborts
// processing of the rest.
func (s *Stager) AddAll(paths []string) []error {
	var errs []error
	for _, path := range paths {
		if err := s.Add(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Remove splices out the entry at index, releasing its preview. Order of the
// remaining entries is preserved.
func (s *Stager) Remove(index int) {
	if index < 0 || index >= len(s.list) {
		return
	}
	s.list[index].releasePreview()
	s.list = append(s.list[:index], s.list[index+1:]...)
}

// ReleaseAll drops every staged entry and releases all preview handles. Used
// when the composer is discarded or its content reset.
func (s *Stager) ReleaseAll() {
	for i := range s.list {
		s.list[i].releasePreview()
	}
	s.list = nil
}

// Len returns the number of staged attachments.
func (s *Stager) Len() int {
	return len(s.list)
}

// List returns a copy of the staged attachments in order.
func (s *Stager) List() []Attachment {
	out := make([]Attachment, len(s.list))
	copy(out, s.list)
	return out
}

func (a *Attachment) releasePreview() {
	if a.Preview != nil {
		a.Preview.Release()
		a.Preview = nil
	}
}
