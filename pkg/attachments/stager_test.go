package attachments

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/unifeed/unifeed-cli/pkg/models"
)

// pngFixture writes a real PNG so content sniffing sees image/png, padded to
// the requested size.
func pngFixture(t *testing.T, dir, name string, size int) string {
	t.Helper()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	data := buf.Bytes()
	if size > len(data) {
		data = append(data, make([]byte, size-len(data))...)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// binFixture writes size bytes with the given magic prefix.
func binFixture(t *testing.T, dir, name string, magic []byte, size int) string {
	t.Helper()

	data := make([]byte, size)
	copy(data, magic)

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// mp4Magic yields video/mp4 from content sniffing (ftyp box).
var mp4Magic = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}

var pdfMagic = []byte("%PDF-1.4\n")

// Small ceilings so fixtures stay tiny; the ratios mirror the stock limits.
func testLimits() Limits {
	return Limits{
		MaxCount:         5,
		MaxImageBytes:    10 << 10,
		MaxVideoBytes:    50 << 10,
		MaxDocumentBytes: 20 << 10,
	}
}

func TestStagerMixedBatchUnderPhotoKind(t *testing.T) {
	dir := t.TempDir()
	imgOK := pngFixture(t, dir, "shot.png", 5<<10)
	videoBig := binFixture(t, dir, "clip.mp4", mp4Magic, 60<<10)
	pdf := binFixture(t, dir, "paper.pdf", pdfMagic, 2<<10)

	s := NewStager(models.KindPhoto, testLimits())
	errs := s.AddAll([]string{imgOK, videoBig, pdf})

	if s.Len() != 1 {
		t.Fatalf("expected exactly 1 staged attachment, got %d", s.Len())
	}
	if got := s.List()[0].Name; got != "shot.png" {
		t.Errorf("staged attachment = %s, want shot.png", got)
	}

	if len(errs) != 2 {
		t.Fatalf("expected 2 rejections, got %d: %v", len(errs), errs)
	}

	rej, ok := AsRejection(errs[0])
	if !ok || rej.Reason != ReasonTooLarge {
		t.Errorf("oversize video: got %v, want ReasonTooLarge", errs[0])
	}
	rej, ok = AsRejection(errs[1])
	if !ok || rej.Reason != ReasonUnsupportedType {
		t.Errorf("pdf under kind=photo: got %v, want ReasonUnsupportedType", errs[1])
	}
}

func TestStagerDocumentsOnlyForNotes(t *testing.T) {
	dir := t.TempDir()
	pdf := binFixture(t, dir, "syllabus.pdf", pdfMagic, 2<<10)

	forNote := NewStager(models.KindNote, testLimits())
	if err := forNote.Add(pdf); err != nil {
		t.Errorf("pdf under kind=note should be accepted, got %v", err)
	}

	forPost := NewStager(models.KindPost, testLimits())
	err := forPost.Add(pdf)
	rej, ok := AsRejection(err)
	if !ok || rej.Reason != ReasonUnsupportedType {
		t.Errorf("pdf under kind=post: got %v, want ReasonUnsupportedType", err)
	}
}

func TestStagerCountLimit(t *testing.T) {
	dir := t.TempDir()
	limits := testLimits()
	limits.MaxCount = 2

	s := NewStager(models.KindPost, limits)
	for i := 0; i < 2; i++ {
		p := pngFixture(t, dir, "img"+string(rune('a'+i))+".png", 1<<10)
		if err := s.Add(p); err != nil {
			t.Fatalf("add %d failed: %v", i, err)
		}
	}

	extra := pngFixture(t, dir, "extra.png", 1<<10)
	err := s.Add(extra)
	rej, ok := AsRejection(err)
	if !ok || rej.Reason != ReasonLimitReached {
		t.Errorf("add past limit: got %v, want ReasonLimitReached", err)
	}
	if s.Len() != 2 {
		t.Errorf("list grew past the limit: len = %d", s.Len())
	}
}

func TestStagerRemovePreservesOrderAndReleasesPreview(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(models.KindPost, testLimits())
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		if err := s.Add(pngFixture(t, dir, name, 1<<10)); err != nil {
			t.Fatalf("add %s failed: %v", name, err)
		}
	}

	removed := s.List()[1].Preview
	if removed == nil {
		t.Fatal("expected a preview handle on a staged image")
	}

	s.Remove(1)

	if !removed.Released() {
		t.Error("preview handle was not released on remove")
	}

	names := []string{s.List()[0].Name, s.List()[1].Name}
	if names[0] != "a.png" || names[1] != "c.png" {
		t.Errorf("remaining order = %v, want [a.png c.png]", names)
	}
}

func TestStagerReleaseAll(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(models.KindPost, testLimits())
	s.Add(pngFixture(t, dir, "a.png", 1<<10))
	s.Add(pngFixture(t, dir, "b.png", 1<<10))

	previews := make([]*Preview, 0, 2)
	for _, a := range s.List() {
		previews = append(previews, a.Preview)
	}

	s.ReleaseAll()

	if s.Len() != 0 {
		t.Errorf("expected empty stager after ReleaseAll, len = %d", s.Len())
	}
	for i, p := range previews {
		if p != nil && !p.Released() {
			t.Errorf("preview %d not released on discard", i)
		}
	}
}

func TestStagerRemoveOutOfRangeIsNoop(t *testing.T) {
	dir := t.TempDir()
	s := NewStager(models.KindPost, testLimits())
	s.Add(pngFixture(t, dir, "a.png", 1<<10))

	s.Remove(-1)
	s.Remove(5)

	if s.Len() != 1 {
		t.Errorf("out-of-range remove changed the list: len = %d", s.Len())
	}
}

func TestStagerSetKindKeepsStagedEntries(t *testing.T) {
	dir := t.TempDir()
	pdf := binFixture(t, dir, "doc.pdf", pdfMagic, 1<<10)

	s := NewStager(models.KindNote, testLimits())
	if err := s.Add(pdf); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// Switching away from note keeps the already staged document but
	// refuses new ones.
	s.SetKind(models.KindQuestion)
	if s.Len() != 1 {
		t.Errorf("kind switch dropped staged entries: len = %d", s.Len())
	}

	another := binFixture(t, dir, "doc2.pdf", pdfMagic, 1<<10)
	if err := s.Add(another); err == nil {
		t.Error("expected rejection of a document under kind=question")
	}
}
