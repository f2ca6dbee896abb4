package attachments

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

// RejectReason classifies why a file was not staged.
type RejectReason int

const (
	ReasonUnsupportedType RejectReason = iota
	ReasonTooLarge
	ReasonLimitReached
)

// RejectedError reports a single file that failed validation. Rejections are
// per-file: one bad file in a batch never blocks the others.
type RejectedError struct {
	Name   string
	Reason RejectReason
	Detail string
}

func (e *RejectedError) Error() string {
	switch e.Reason {
	case ReasonUnsupportedType:
		return fmt.Sprintf("%s: unsupported file type (%s)", e.Name, e.Detail)
	case ReasonTooLarge:
		return fmt.Sprintf("%s: file too large (%s)", e.Name, e.Detail)
	case ReasonLimitReached:
		return fmt.Sprintf("%s: attachment limit reached", e.Name)
	}
	return fmt.Sprintf("%s: rejected", e.Name)
}

// Attachment is one staged file, validated and pending submission.
type Attachment struct {
	Name      string
	Path      string
	MIMEType  string
	SizeBytes int64
	Preview   *Preview
}

// Limits holds the per-type size ceilings and the attachment count limit.
type Limits struct {
	MaxCount         int
	MaxImageBytes    int64
	MaxVideoBytes    int64
	MaxDocumentBytes int64
}

// DefaultLimits returns the stock limits: 5 attachments, 10MB images, 50MB
// video, 20MB documents.
func DefaultLimits() Limits {
	return Limits{
		MaxCount:         5,
		MaxImageBytes:    10 << 20,
		MaxVideoBytes:    50 << 20,
		MaxDocumentBytes: 20 << 20,
	}
}

// LimitsFromSettings builds Limits from the composer settings, falling back
// to defaults for unset values.
func LimitsFromSettings(s models.ComposerSettings) Limits {
	l := DefaultLimits()
	if s.MaxAttachments > 0 {
		l.MaxCount = s.MaxAttachments
	}
	if s.MaxImageBytes > 0 {
		l.MaxImageBytes = s.MaxImageBytes
	}
	if s.MaxVideoBytes > 0 {
		l.MaxVideoBytes = s.MaxVideoBytes
	}
	if s.MaxDocumentBytes > 0 {
		l.MaxDocumentBytes = s.MaxDocumentBytes
	}
	return l
}

// documentMIMETypes are only accepted while composing a note.
var documentMIMETypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

func isImage(mimeType string) bool { return strings.HasPrefix(mimeType, "image/") }
func isVideo(mimeType string) bool { return strings.HasPrefix(mimeType, "video/") }

func isDocument(mimeType string) bool {
	// text/plain may carry a charset parameter from content sniffing
	if base, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = base
	}
	return documentMIMETypes[mimeType]
}

// detectMIMEType sniffs the file content, falling back to the extension when
// sniffing yields nothing better than a generic binary type.
func detectMIMEType(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}

	detected := mtype.String()
	if detected == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			return byExt, nil
		}
	}
	return detected, nil
}

// validate applies the rules in order: type allow-list for the active kind
// first, then the per-type size ceiling.
func (l Limits) validate(kind models.Kind, name, mimeType string, size int64) error {
	var ceiling int64
	switch {
	case isImage(mimeType):
		ceiling = l.MaxImageBytes
	case isVideo(mimeType):
		ceiling = l.MaxVideoBytes
	case isDocument(mimeType):
		if kind != models.KindNote {
			return &RejectedError{Name: name, Reason: ReasonUnsupportedType, Detail: mimeType + " only allowed on notes"}
		}
		ceiling = l.MaxDocumentBytes
	default:
		return &RejectedError{Name: name, Reason: ReasonUnsupportedType, Detail: mimeType}
	}

	if size > ceiling {
		return &RejectedError{
			Name:   name,
			Reason: ReasonTooLarge,
			Detail: fmt.Sprintf("%s exceeds the %s limit", humanize.Bytes(uint64(size)), humanize.Bytes(uint64(ceiling))),
		}
	}
	return nil
}

// AsRejection unwraps err as a *RejectedError if it is one.
func AsRejection(err error) (*RejectedError, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
