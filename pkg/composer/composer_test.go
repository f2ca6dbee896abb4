package composer

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/unifeed/unifeed-cli/pkg/attachments"
	"github.com/unifeed/unifeed-cli/pkg/models"
)

func newTestComposer() *Composer {
	return New(models.KindPost, models.VisibilityPublic, attachments.DefaultLimits())
}

func pngFile(t *testing.T, dir, name string) string {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestSetTextDerivesHashtags(t *testing.T) {
	c := newTestComposer()
	c.Open(models.KindPost)

	c.SetText("cramming for #finals with @sara #Finals", 39)
	if want := []string{"finals"}; !reflect.DeepEqual(c.Hashtags(), want) {
		t.Errorf("hashtags = %v, want %v", c.Hashtags(), want)
	}
	if want := []string{"sara"}; !reflect.DeepEqual(c.Mentions(), want) {
		t.Errorf("mentions = %v, want %v", c.Mentions(), want)
	}

	// Deleting the tags must empty the derived list, no residue.
	c.SetText("cramming for finals with sara", 29)
	if got := c.Hashtags(); len(got) != 0 {
		t.Errorf("hashtags after edit = %v, want empty", got)
	}
}

func TestMoveCursorRecomputesTrigger(t *testing.T) {
	c := newTestComposer()
	c.Open(models.KindPost)
	c.SetText("hey @max how is #lab going", 26)

	if c.Trigger().Active {
		t.Fatal("trigger should be inactive at end of text")
	}

	c.MoveCursor(8) // inside "@max"
	trig := c.Trigger()
	if !trig.Active || trig.Query != "max" {
		t.Errorf("trigger after cursor move = %+v, want active with query max", trig)
	}
}

func TestSetKindPreservesWork(t *testing.T) {
	dir := t.TempDir()
	c := newTestComposer()
	c.Open(models.KindPost)

	c.SetText("is P equal to NP? #complexity", 29)
	if err := c.Attach(pngFile(t, dir, "diagram.png")); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	c.SetKind(models.KindQuestion)

	if c.Text() == "" {
		t.Error("kind switch cleared the text")
	}
	if c.AttachmentCount() != 1 {
		t.Error("kind switch dropped staged attachments")
	}
	if c.Kind() != models.KindQuestion {
		t.Errorf("kind = %s, want question", c.Kind())
	}
}

func TestReopenKeepsContent(t *testing.T) {
	c := newTestComposer()
	c.Open(models.KindPost)
	c.SetText("half-typed thought", 18)
	c.Close()

	c.Open(models.KindNote)
	if c.Text() != "half-typed thought" {
		t.Errorf("reopen lost text: %q", c.Text())
	}
	if c.Kind() != models.KindNote {
		t.Errorf("reopen kind = %s, want note", c.Kind())
	}
}

func TestDiscardClearsContentAndReleasesPreviews(t *testing.T) {
	dir := t.TempDir()
	c := newTestComposer()
	c.Open(models.KindPost)
	c.SetText("throwaway #draft", 16)
	if err := c.Attach(pngFile(t, dir, "pic.png")); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	preview := c.Attachments()[0].Preview
	if preview == nil {
		t.Fatal("expected a preview on a staged image")
	}

	c.Discard()

	if c.IsOpen() {
		t.Error("discard left the composer open")
	}
	if c.Text() != "" || len(c.Hashtags()) != 0 || c.AttachmentCount() != 0 {
		t.Error("discard left content behind")
	}
	if !preview.Released() {
		t.Error("discard did not release the preview handle")
	}
}

func TestEmpty(t *testing.T) {
	c := newTestComposer()
	c.Open(models.KindPost)

	if !c.Empty() {
		t.Error("fresh composer should be empty")
	}

	c.SetText("   \n\t  ", 7)
	if !c.Empty() {
		t.Error("whitespace-only text should still count as empty")
	}

	c.SetText("hello", 5)
	if c.Empty() {
		t.Error("composer with text should not be empty")
	}
}

func TestDraftRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := pngFile(t, dir, "keep.png")

	c := newTestComposer()
	c.Open(models.KindQuestion)
	c.SetVisibility(models.VisibilityUniversity)
	c.SetTitle("Midterm scope?")
	c.SetText("does #ch7 count? ask @ta_kim", 28)
	if err := c.Attach(img); err != nil {
		t.Fatalf("attach failed: %v", err)
	}

	d := c.Draft()

	restored := newTestComposer()
	restored.Open(models.KindPost)
	if errs := restored.RestoreDraft(d); len(errs) != 0 {
		t.Fatalf("restore reported errors: %v", errs)
	}

	if restored.Kind() != models.KindQuestion {
		t.Errorf("restored kind = %s", restored.Kind())
	}
	if restored.Visibility() != models.VisibilityUniversity {
		t.Errorf("restored visibility = %s", restored.Visibility())
	}
	if restored.Title() != "Midterm scope?" {
		t.Errorf("restored title = %q", restored.Title())
	}
	if restored.Text() != c.Text() {
		t.Errorf("restored text = %q", restored.Text())
	}
	if want := []string{"ch7"}; !reflect.DeepEqual(restored.Hashtags(), want) {
		t.Errorf("restored hashtags = %v, want %v (must be rederived)", restored.Hashtags(), want)
	}
	if restored.AttachmentCount() != 1 {
		t.Errorf("restored attachments = %d, want 1", restored.AttachmentCount())
	}
}
