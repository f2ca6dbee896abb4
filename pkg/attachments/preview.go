package attachments

import (
	"fmt"
	"image"
	"os"
	"strings"

	// Register decoders for the formats the preview panel can describe.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Preview is a transient handle onto a staged image or video, used by the UI
// while the attachment is staged. It holds an open file descriptor, so its
// lifetime is a scoped resource: Release must be called when the entry is
// removed or the composer is discarded.
type Preview struct {
	f        *os.File
	label    string
	released bool
}

func newPreview(path, mimeType string) (*Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	p := &Preview{f: f}

	if strings.HasPrefix(mimeType, "image/") {
		if cfg, format, err := image.DecodeConfig(f); err == nil {
			p.label = fmt.Sprintf("%s %dx%d", strings.ToUpper(format), cfg.Width, cfg.Height)
		}
	}
	if p.label == "" {
		p.label = mimeType
	}

	return p, nil
}

// Label returns a short human-readable description for the attachment panel,
// e.g. "PNG 1920x1080".
func (p *Preview) Label() string {
	return p.label
}

// Release closes the underlying handle. Safe to call more than once.
func (p *Preview) Release() {
	if p.released {
		return
	}
	p.released = true
	if p.f != nil {
		p.f.Close()
	}
}

// Released reports whether the handle has been released.
func (p *Preview) Released() bool {
	return p.released
}
